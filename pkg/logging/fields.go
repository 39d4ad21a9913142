package logging

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers for the structural model entities

func NodeID(id uint64) Field {
	return Uint64("node_id", id)
}

func LineID(id uint64) Field {
	return Uint64("line_id", id)
}

func SupportID(id uint64) Field {
	return Uint64("support_id", id)
}

func SectionID(id uint64) Field {
	return Uint64("section_id", id)
}

func MaterialID(id uint64) Field {
	return Uint64("material_id", id)
}

func ReleaseID(id uint64) Field {
	return Uint64("release_id", id)
}

func LoadCaseID(id uint64) Field {
	return Uint64("load_case_id", id)
}

func LoadID(id uint64) Field {
	return Uint64("load_id", id)
}

func Coord(x, y, z float64) Field {
	return Field{Key: "coord", Value: [3]float64{x, y, z}}
}

func Operation(op string) Field {
	return String("operation", op)
}

func Count(n int) Field {
	return Int("count", n)
}
