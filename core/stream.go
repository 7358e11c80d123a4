package core

import (
	"fmt"

	"github.com/tsawler/bionic/internal/filters"
)

// Decode runs the data through every filter named by /Filter, in order.
// /DecodeParms is either one dictionary for a single filter or an array
// parallel to the filter array. Image codecs are left encoded.
func (s *Stream) Decode() ([]byte, error) {
	names, parms, err := s.filterChain()
	if err != nil {
		return nil, err
	}

	data := s.Data
	for i, name := range names {
		if data, err = filters.Decode(name, data, parms[i]); err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, name, err)
		}
	}
	return data, nil
}

// Filters returns the filter names applied to the stream, in order.
func (s *Stream) Filters() []string {
	names, _, _ := s.filterChain()
	return names
}

func (s *Stream) filterChain() ([]string, []filters.Params, error) {
	switch f := s.Dict.Get("Filter").(type) {
	case nil, Null:
		return nil, nil, nil
	case Name:
		return []string{string(f)}, []filters.Params{decodeParams(s.Dict.Get("DecodeParms"))}, nil
	case Array:
		names := make([]string, len(f))
		parms := make([]filters.Params, len(f))
		list, isList := s.Dict.Get("DecodeParms").(Array)
		for i, obj := range f {
			name, ok := obj.(Name)
			if !ok {
				return nil, nil, fmt.Errorf("filter %d is %T, not a name", i, obj)
			}
			names[i] = string(name)
			if isList {
				parms[i] = decodeParams(list.Get(i))
			} else {
				parms[i] = decodeParams(s.Dict.Get("DecodeParms"))
			}
		}
		return names, parms, nil
	default:
		return nil, nil, fmt.Errorf("invalid /Filter %T", f)
	}
}

// decodeParams keeps the integer and boolean entries of a parameter
// dictionary; no standard filter reads anything else.
func decodeParams(obj Object) filters.Params {
	dict, ok := obj.(Dict)
	if !ok {
		return nil
	}
	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch v := v.(type) {
		case Int:
			params[k] = int(v)
		case Real:
			params[k] = int(v)
		case Bool:
			if v {
				params[k] = 1
			} else {
				params[k] = 0
			}
		}
	}
	return params
}
