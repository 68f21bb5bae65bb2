package content

import "fmt"

// Problem is one content-integrity finding tied to a source file.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// Report is the outcome of a content-integrity pass over a directory.
type Report struct {
	Files    int
	Problems []Problem
}

// OK reports whether the content passed every check.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Check runs the cross-file integrity rules over already-loaded posts:
// balanced code fences and no duplicate title+date pairs. Per-file parse
// and validation problems collected during loading are carried through.
func Check(posts []Post, loadProblems []Problem) *Report {
	report := &Report{
		Files:    len(posts) + len(loadProblems),
		Problems: append([]Problem(nil), loadProblems...),
	}

	seen := make(map[string]string, len(posts))
	for _, p := range posts {
		if _, err := CodeBlocks(p.Body); err != nil {
			report.Problems = append(report.Problems, Problem{Path: p.Path, Message: err.Error()})
		}
		if p.Kind != KindPost {
			continue
		}
		key := p.Title + "\x00" + p.Date
		if other, ok := seen[key]; ok {
			report.Problems = append(report.Problems, Problem{
				Path:    p.Path,
				Message: fmt.Sprintf("duplicate title %q and date %s, already used by %s", p.Title, p.Date, other),
			})
			continue
		}
		seen[key] = p.Path
	}
	return report
}

// CheckDir loads a content directory and runs the full integrity pass.
func CheckDir(dir string) (*Report, error) {
	posts, problems, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return Check(posts, problems), nil
}
