// Package sanitizer normalizes free-text input before validation: mission
// titles and locations, volunteer names, and category labels.
package sanitizer

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}
