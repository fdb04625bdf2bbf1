package capmarshal

// DeepCopy produces a freshly allocated, cycle-safe clone of a copy-only
// subgraph (spec C3, §4.3). v must classify (transitively) as PassUnit,
// PassBoolean, PassNumeric, PassBigInt, PassString, PassSymbol,
// PassCopyRecord, PassCopyArray, or PassCopyError; encountering a remote or
// future anywhere in the subgraph fails, since copies may not cross a
// capability boundary.
//
// Shared substructure is preserved: if two branches of v reference the
// same Record or Array, the clone's corresponding branches reference the
// same cloned Record or Array too (visited is keyed by the original's
// identity, not the clone's).
func DeepCopy(v any) (any, error) {
	visited := make(map[uintptr]any)
	return deepCopyWalk(v, visited)
}

func deepCopyWalk(v any, visited map[uintptr]any) (any, error) {
	switch vv := v.(type) {
	case nil, bool, string, Symbol, undefinedType:
		return v, nil
	case *BigInt:
		if vv == nil {
			return v, nil
		}
		cloned := new(BigInt).Set(vv)
		return cloned, nil
	case *Remote, *Future:
		return nil, newClassifyError(ErrCopyCrossesCapability, "$")
	case Record:
		id, _, ok := identityOf(vv)
		if ok {
			if clone, seen := visited[id]; seen {
				return clone, nil
			}
		}
		clone := make(Record, len(vv))
		if ok {
			visited[id] = clone
		}
		for k, field := range vv {
			cv, err := deepCopyWalk(field, visited)
			if err != nil {
				return nil, err
			}
			clone[k] = cv
		}
		return clone, nil
	case Array:
		id, _, ok := identityOf(vv)
		if ok {
			if clone, seen := visited[id]; seen {
				return clone, nil
			}
		}
		clone := make(Array, len(vv))
		if ok {
			visited[id] = clone
		}
		for i, elem := range vv {
			cv, err := deepCopyWalk(elem, visited)
			if err != nil {
				return nil, err
			}
			clone[i] = cv
		}
		return clone, nil
	case *CapError:
		if vv == nil {
			return v, nil
		}
		return &CapError{Name: vv.Name, Message: vv.Message}, nil
	case NamedError:
		return &CapError{Name: vv.ErrorName(), Message: vv.Error()}, nil
	case error:
		return &CapError{Name: "Error", Message: vv.Error()}, nil
	default:
		if isNumericKind(v) {
			return v, nil
		}
		return nil, newClassifyError(ErrMalformedShape, "$")
	}
}
