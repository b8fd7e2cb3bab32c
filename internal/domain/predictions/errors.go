package predictions

import "errors"

// ErrPayloadTooLarge indicates the uploaded image exceeds the allowed size.
// Checked before any processing, surfaced as HTTP 413.
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrDecode indicates the uploaded bytes are not a decodable image.
var ErrDecode = errors.New("image decode failed")

// ErrInference indicates the model runtime failed during forward inference.
var ErrInference = errors.New("inference failed")

// ErrPersistence indicates the prediction store rejected a read or write.
var ErrPersistence = errors.New("prediction store unavailable")
