package model

// DragResult is the outcome of a drag gesture: either NoMove or Move.
type DragResult interface {
	isDragResult()
}

// NoMove is a drag that ended outside the list.
type NoMove struct{}

// Move relocates the record at From to To.
type Move struct {
	From int
	To   int
}

func (NoMove) isDragResult() {}
func (Move) isDragResult()   {}
