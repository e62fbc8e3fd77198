package conversation

const defaultHistoryWindow = 10

type options struct {
	historyWindow        int
	localizationResearch bool
}

type Option func(*options)

// WithHistoryWindow limits how many prior turns are sent to the generator
func WithHistoryWindow(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyWindow = n
		}
	}
}

// WithLocalizationResearch inserts the jurisdiction research step between
// the last answer and rendering
func WithLocalizationResearch(enabled bool) Option {
	return func(o *options) {
		o.localizationResearch = enabled
	}
}

func newOptions(opts []Option) options {
	o := options{historyWindow: defaultHistoryWindow}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
