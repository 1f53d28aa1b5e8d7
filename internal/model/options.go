package model

// Options configures the Builder.
type Options struct {
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{Labeler: DefaultLabeler}
}
