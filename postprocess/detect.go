package postprocess

// BoxRect are the corner coordinates of the bounding box of a detected
// object.  Coordinates are model input space pixels when emitted by the
// SSD decoder and native frame pixels after rectification.
type BoxRect struct {
	Left   float32
	Top    float32
	Right  float32
	Bottom float32
}

// DetectResult defines the attributes of a single object detected
type DetectResult struct {
	// Class is the model class id of the detected object, resolved to a
	// human readable name through the label map
	Class int
	// Box are the bounding box dimensions of the object location
	Box BoxRect
	// Probability is the confidence score of the object detected
	Probability float32
	// ID is a unique ID assigned to the detection result
	ID int64
}
