package submission

import (
	"context"
	"fmt"
	"strings"

	"github.com/rishav-026/Gamified-Coding-platform/internal/domain"
)

// Runner evaluates submitted code
type Runner interface {
	Run(ctx context.Context, code, language string) (domain.TestResults, error)
}

// supportedLanguages is keyed by lowercase language name
var supportedLanguages = map[string]bool{
	"c":          true,
	"cpp":        true,
	"go":         true,
	"java":       true,
	"javascript": true,
	"python":     true,
	"rust":       true,
	"typescript": true,
}

// SupportedLanguage reports whether the static checker knows the language
func SupportedLanguage(language string) bool {
	return supportedLanguages[strings.ToLower(language)]
}

// StaticChecker is the default Runner. It never executes code; it only
// applies structural checks that hold for every supported language.
type StaticChecker struct{}

// NewStaticChecker creates the default runner
func NewStaticChecker() *StaticChecker {
	return &StaticChecker{}
}

// Run applies every check and reports each one
func (StaticChecker) Run(ctx context.Context, code, language string) (domain.TestResults, error) {
	if err := ctx.Err(); err != nil {
		return domain.TestResults{}, err
	}

	cases := []domain.TestResult{
		check(CheckNotEmpty, strings.TrimSpace(code) != "", "submission contains no code"),
		check(CheckSupportedLanguage, SupportedLanguage(language), fmt.Sprintf("unsupported language %q", language)),
		check(CheckSizeLimit, len(code) <= MaxCodeBytes, fmt.Sprintf("code exceeds %d bytes", MaxCodeBytes)),
	}
	if msg := unbalanced(code, quotesFor(language)); msg != "" {
		cases = append(cases, check(CheckBalancedBrackets, false, msg))
	} else {
		cases = append(cases, check(CheckBalancedBrackets, true, ""))
	}

	res := domain.TestResults{Total: len(cases), Cases: cases}
	for _, c := range cases {
		if c.Status == CheckPassed {
			res.Passed++
		} else {
			res.Failed++
		}
	}
	res.AllPassed = res.Failed == 0
	return res, nil
}

func check(name string, ok bool, failure string) domain.TestResult {
	if ok {
		return domain.TestResult{Name: name, Status: CheckPassed}
	}
	return domain.TestResult{Name: name, Status: CheckFailed, Message: failure}
}

var closers = map[rune]rune{')': '(', ']': '[', '}': '{'}

// quotesFor returns the string delimiters of a language. Rust is limited to
// double quotes because a single quote also starts a lifetime.
func quotesFor(language string) string {
	switch strings.ToLower(language) {
	case "go", "javascript", "typescript":
		return "\"'`"
	case "rust":
		return "\""
	default:
		return "\"'"
	}
}

// unbalanced returns a description of the first bracket mismatch, or ""
// when every bracket outside string literals is matched.
func unbalanced(code, quotes string) string {
	var stack []rune
	var quote rune
	escaped := false

	line := 1
	for _, r := range code {
		if r == '\n' {
			line++
		}
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\' && quote != '`':
				escaped = true
			case r == quote:
				quote = 0
			case r == '\n' && quote != '`':
				// unterminated single-line literal
				quote = 0
			}
			continue
		}

		if strings.ContainsRune(quotes, r) {
			quote = r
			continue
		}

		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != closers[r] {
				return fmt.Sprintf("unexpected %q on line %d", r, line)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("unclosed %q", stack[len(stack)-1])
	}
	return ""
}
