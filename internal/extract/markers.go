package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Markers names the structural hooks of one platform's exam export. They are
// an external contract: when the platform changes its markup, extraction
// silently finds nothing, so the set carries a Version that ends up in every
// report.
//
// Tags are fixed (div blocks, h3 titles, span labels); only class names and
// id patterns vary.
type Markers struct {
	Version string `yaml:"version" json:"version"`

	// Block is the class of the div wrapping one question.
	Block string `yaml:"block" json:"block"`
	// BlockID is the attribute of the block holding the platform question id.
	BlockID string `yaml:"blockID" json:"blockID"`
	// Title is the class of the h3 holding the prompt.
	Title string `yaml:"title" json:"title"`
	// TypeLabel is the class of the span inside the title naming the type.
	TypeLabel string `yaml:"typeLabel" json:"typeLabel"`

	// Option is the class of the div wrapping one choice.
	Option string `yaml:"option" json:"option"`
	// OptionLetter is a regexp matched against class tokens of the letter span.
	OptionLetter string `yaml:"optionLetter" json:"optionLetter"`
	// OptionText is the class of the div holding the choice text.
	OptionText string `yaml:"optionText" json:"optionText"`
	// OptionChecked is the class marking a selected choice.
	OptionChecked string `yaml:"optionChecked" json:"optionChecked"`

	// AnswerInputID is a regexp matched against the id of the hidden answer input.
	AnswerInputID string `yaml:"answerInputID" json:"answerInputID"`
	// AnswerBlock is a regexp matched against class tokens of a div holding
	// a filled-in answer.
	AnswerBlock string `yaml:"answerBlock" json:"answerBlock"`
}

// DefaultMarkers matches the "questionLi" export layout.
var DefaultMarkers = Markers{
	Version:       "questionli-v1",
	Block:         "questionLi",
	BlockID:       "data",
	Title:         "mark_name",
	TypeLabel:     "colorShallow",
	Option:        "answerBg",
	OptionLetter:  `^choice\d+$`,
	OptionText:    "answer_p",
	OptionChecked: "check_answer",
	AnswerInputID: `^answer\d+$`,
	AnswerBlock:   `^ans-|answer`,
}

// Merge returns m with every non-empty field of o applied on top.
func (m Markers) Merge(o Markers) Markers {
	set := func(dst *string, v string) {
		if s := strings.TrimSpace(v); s != "" {
			*dst = s
		}
	}
	set(&m.Version, o.Version)
	set(&m.Block, o.Block)
	set(&m.BlockID, o.BlockID)
	set(&m.Title, o.Title)
	set(&m.TypeLabel, o.TypeLabel)
	set(&m.Option, o.Option)
	set(&m.OptionLetter, o.OptionLetter)
	set(&m.OptionText, o.OptionText)
	set(&m.OptionChecked, o.OptionChecked)
	set(&m.AnswerInputID, o.AnswerInputID)
	set(&m.AnswerBlock, o.AnswerBlock)
	return m
}

// Validate checks required fields and that patterns compile.
func (m Markers) Validate() error {
	if strings.TrimSpace(m.Block) == "" {
		return errors.New("markers: block class is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("markers: title class is required")
	}
	_, err := m.compile()
	return err
}

type compiledMarkers struct {
	Markers
	letter   *regexp.Regexp
	inputID  *regexp.Regexp
	ansBlock *regexp.Regexp
}

func (m Markers) compile() (compiledMarkers, error) {
	c := compiledMarkers{Markers: m}
	var err error
	if c.letter, err = compileOptional(m.OptionLetter); err != nil {
		return c, fmt.Errorf("markers: optionLetter: %w", err)
	}
	if c.inputID, err = compileOptional(m.AnswerInputID); err != nil {
		return c, fmt.Errorf("markers: answerInputID: %w", err)
	}
	if c.ansBlock, err = compileOptional(m.AnswerBlock); err != nil {
		return c, fmt.Errorf("markers: answerBlock: %w", err)
	}
	return c, nil
}

func compileOptional(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return regexp.Compile(expr)
}
