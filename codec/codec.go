package codec

import (
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

func Decode[T any](bz []byte) (T, error) {
	value := new(T)
	err := json.Unmarshal(bz, value)
	if err != nil {
		return *value, eris.Wrap(err, "")
	}
	return *value, nil
}

// DecodeInto unmarshals bz into an existing value. Used when the target was
// allocated reflectively and its concrete type is not known at the call site.
func DecodeInto(bz []byte, target any) error {
	if err := json.Unmarshal(bz, target); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}

func Encode(value any) ([]byte, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return bz, nil
}
