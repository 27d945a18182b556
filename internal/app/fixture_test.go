package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// examHTML builds an export with the given number of four-option choice
// questions followed by subjective ones.
func examHTML(choice, subjective int) string {
	var b strings.Builder
	b.WriteString(`<!doctype html><html><head><meta charset="utf-8"><title>exam</title></head><body><div class="mark_table">`)
	n := 0
	for i := 0; i < choice; i++ {
		n++
		fmt.Fprintf(&b, `<div class="questionLi" data="%d"><h3 class="mark_name">%d. <span class="colorShallow">(单选题)</span>Choice question %d</h3>`, 100+n, n, n)
		for j, letter := range []string{"A", "B", "C", "D"} {
			fmt.Fprintf(&b, `<div class="answerBg"><span class="num_option choice%d">%s</span><div class="answer_p"><p>option %s%d</p></div></div>`, n*10+j, letter, letter, n)
		}
		fmt.Fprintf(&b, `<input type="hidden" id="answer%d" value="B"></div>`, 100+n)
	}
	for i := 0; i < subjective; i++ {
		n++
		fmt.Fprintf(&b, `<div class="questionLi" data="%d"><h3 class="mark_name">%d. <span class="colorShallow">(简答题)</span>Subjective question %d</h3>`+
			`<textarea>model answer %d</textarea></div>`, 100+n, n, n, n)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}
