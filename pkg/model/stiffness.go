package model

// Stiffness sentinels shared by Support and Release. A magnitude at or
// below the free sentinel is a released degree of freedom; at or above
// the rigid sentinel it is fully constrained. Translational and
// rotational DOFs carry separate constants even though the values
// currently coincide.
const (
	TranslationalFree  = 1e-4
	TranslationalRigid = 1e15
	RotationalFree     = 1e-4
	RotationalRigid    = 1e15
)

// DOFState is the symbolic classification of one degree of freedom
type DOFState byte

const (
	StateFree    DOFState = 'f'
	StatePartial DOFState = '_'
	StateRigid   DOFState = 'x'
)

// dofCount is the degrees of freedom per end condition: three
// translational followed by three rotational.
const dofCount = 6

// normalizeStiffness substitutes the free sentinel for an exact zero
// input so downstream classification never sees a literal zero.
// The first three DOFs are translational, the rest rotational.
func normalizeStiffness(k [dofCount]float64) [dofCount]float64 {
	for i := range k {
		if k[i] == 0 {
			if i < 3 {
				k[i] = TranslationalFree
			} else {
				k[i] = RotationalFree
			}
		}
	}
	return k
}

// classifyStiffness maps a normalized magnitude to its symbolic state.
// Boundary values belong to the extreme states: a magnitude exactly at
// the free threshold is free, exactly at the rigid threshold is rigid.
func classifyStiffness(k float64, translational bool) DOFState {
	freeThreshold := RotationalFree
	rigidThreshold := RotationalRigid
	if translational {
		freeThreshold = TranslationalFree
		rigidThreshold = TranslationalRigid
	}

	switch {
	case k <= freeThreshold:
		return StateFree
	case k >= rigidThreshold:
		return StateRigid
	default:
		return StatePartial
	}
}

// classifyAll classifies one six-DOF end condition
func classifyAll(k [dofCount]float64) [dofCount]DOFState {
	var status [dofCount]DOFState
	for i := range k {
		status[i] = classifyStiffness(k[i], i < 3)
	}
	return status
}

// statusString renders a six-DOF status as "uuu,rrr", translational
// states first.
func statusString(status [dofCount]DOFState) string {
	b := make([]byte, 0, dofCount+1)
	for i, s := range status {
		if i == 3 {
			b = append(b, ',')
		}
		b = append(b, byte(s))
	}
	return string(b)
}
