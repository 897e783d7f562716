// Package security scans processed file content for credentials that
// should not end up in a digest.
package security

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KnockOutEZ/codedigest/internal/models"
)

// Issue represents a security issue found in the code
type Issue struct {
	FilePath string `json:"filePath"`
	Line     int    `json:"line"`
	RuleID   string `json:"ruleId"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Match    string `json:"match"`
}

type rule struct {
	id      string
	name    string
	pattern *regexp.Regexp
}

var defaultRules = []rule{
	{"aws-access-key", "AWS Access Key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"private-key", "Private Key", regexp.MustCompile(`-----BEGIN[A-Z ]*PRIVATE KEY-----`)},
	{"github-token", "GitHub Token", regexp.MustCompile(`gh[pousr]_[0-9A-Za-z]{36}`)},
	{"google-api-key", "Google API Key", regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`)},
	{"slack-token", "Slack Token", regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,}`)},
	{"password-assignment", "Password in Code", regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[:=]\s*['"][^'"]{4,}['"]`)},
	{"api-key-assignment", "API Key in Code", regexp.MustCompile(`(?i)(?:api_key|apikey|api_secret|apisecret)\s*[:=]\s*['"][^'"]{8,}['"]`)},
}

// Checker handles security checks for files
type Checker struct {
	rules   []rule
	workers int
}

// New creates a checker that scans up to workers files concurrently.
func New(workers int) *Checker {
	if workers < 1 {
		workers = 1
	}
	return &Checker{rules: defaultRules, workers: workers}
}

// Check scans the text records. Binary and failed records are skipped.
// Issues are sorted by file path and line number.
func (c *Checker) Check(ctx context.Context, records []models.FileRecord) ([]Issue, error) {
	var (
		mu     sync.Mutex
		issues []Issue
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range records {
		r := &records[i]
		if r.IsBinary || r.Failed() {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found := c.CheckContent(r.Path, r.Content)
			if len(found) > 0 {
				mu.Lock()
				issues = append(issues, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].FilePath == issues[j].FilePath {
			if issues[i].Line == issues[j].Line {
				return issues[i].RuleID < issues[j].RuleID
			}
			return issues[i].Line < issues[j].Line
		}
		return issues[i].FilePath < issues[j].FilePath
	})
	return issues, nil
}

// CheckContent performs a quick security check on a string content
func (c *Checker) CheckContent(path, content string) []Issue {
	var issues []Issue
	for n, line := range strings.Split(content, "\n") {
		for _, r := range c.rules {
			for _, m := range r.pattern.FindAllString(line, -1) {
				issues = append(issues, Issue{
					FilePath: path,
					Line:     n + 1,
					RuleID:   r.id,
					Message:  fmt.Sprintf("Potential %s found", r.name),
					Severity: "warning",
					Match:    mask(m),
				})
			}
		}
	}
	return issues
}

// Report renders issues as a plain-text report.
func Report(issues []Issue) string {
	var sb strings.Builder
	sb.WriteString("Security Check Report\n")
	sb.WriteString("====================\n\n")

	if len(issues) == 0 {
		sb.WriteString("No security issues found.\n")
		return sb.String()
	}

	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("File: %s\n", issue.FilePath))
		sb.WriteString(fmt.Sprintf("Line: %d\n", issue.Line))
		sb.WriteString(fmt.Sprintf("Rule: %s\n", issue.RuleID))
		sb.WriteString(fmt.Sprintf("Severity: %s\n", issue.Severity))
		sb.WriteString(fmt.Sprintf("Message: %s\n", issue.Message))
		sb.WriteString(fmt.Sprintf("Match: %s\n\n", issue.Match))
	}
	return sb.String()
}

// mask keeps the first four characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}
