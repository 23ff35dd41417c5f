package landmark

// Landmark names produced by the face-mesh collaborator.
const (
	Hair     = "hair"
	Glabella = "glabella"
	Chin     = "chin"

	BrowStartLeft  = "brow_start_left"
	BrowStartRight = "brow_start_right"
	BrowEndLeft    = "brow_end_left"
	BrowEndRight   = "brow_end_right"

	EyeInLeft   = "eye_in_left"
	EyeInRight  = "eye_in_right"
	EyeOutLeft  = "eye_out_left"
	EyeOutRight = "eye_out_right"

	NoseTop   = "nose_top"
	NoseBase  = "nose_base"
	NoseLeft  = "nose_left"
	NoseRight = "nose_right"

	MouthLeft  = "mouth_left"
	MouthRight = "mouth_right"

	EarLeft  = "ear_left"
	EarRight = "ear_right"

	GonionLeft  = "gonion_left"
	GonionRight = "gonion_right"
)
