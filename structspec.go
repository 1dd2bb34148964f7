package fixedwidth

import (
	"reflect"
	"sync"
)

// structSpec carries the per-type decoding and encoding plans for a struct.
// Only exported fields participate; unexported fields consume no descriptors.
type structSpec struct {
	indices  []int
	names    []string
	types    []reflect.Type
	setters  []valueSetter
	encoders []valueEncoder
}

func buildStructSpec(t reflect.Type) *structSpec {
	ss := &structSpec{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		ss.indices = append(ss.indices, i)
		ss.names = append(ss.names, f.Name)
		ss.types = append(ss.types, f.Type)
		ss.setters = append(ss.setters, newValueSetter(f.Type))
		ss.encoders = append(ss.encoders, newValueEncoder(f.Type))
	}
	return ss
}

var structSpecCache sync.Map // map[reflect.Type]*structSpec

// cachedStructSpec is like buildStructSpec but cached to prevent duplicate
// work.
func cachedStructSpec(t reflect.Type) *structSpec {
	if s, ok := structSpecCache.Load(t); ok {
		return s.(*structSpec)
	}
	s, _ := structSpecCache.LoadOrStore(t, buildStructSpec(t))
	return s.(*structSpec)
}
