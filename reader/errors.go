package reader

// DecodeError indicates that the input bytes could not be turned into a
// decoded model. It is the only fatal error the pipeline produces; all
// per-record anomalies downstream degrade to empty fields instead.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decoding model: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
