package codegen

// reg identifies one of the four general-purpose registers used to hold
// intermediate expression results. The pool is deliberately small and
// round-robins through regCount slots, spilling to the stack once every
// slot is in simultaneous use.
type reg int

const (
	regInvalid reg = -1
	regEAX     reg = 0
	regEBX     reg = 1
	regECX     reg = 2
	regEDX     reg = 3
	regCount       = 4
)

var longNames = [...]string{"eax", "ebx", "ecx", "edx"}
var wordNames = [...]string{"ax", "bx", "cx", "dx"}
var byteNames = [...]string{"al", "bl", "cl", "dl"}

// name returns r's spelling at the given storage width (4, 2, or 1
// bytes), matching the register aliasing rules of the x86 architecture.
func (r reg) name(width int) string {
	switch width {
	case 2:
		return wordNames[r]
	case 1:
		return byteNames[r]
	default:
		return longNames[r]
	}
}
