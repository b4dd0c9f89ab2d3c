package tui

const defaultPageSize = 7

// Option customizes picker construction.
type Option func(*Picker)

// WithPromptDriver overrides the prompt driver, primarily for testing.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Picker) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithField pins the picker to a named field instead of the first
// autocomplete field in the definition.
func WithField(name string) Option {
	return func(p *Picker) {
		if name != "" {
			p.field = name
		}
	}
}

// WithPageSize sets how many suggestions the select prompt shows per page.
func WithPageSize(n int) Option {
	return func(p *Picker) {
		if n > 0 {
			p.pageSize = n
		}
	}
}
