package carousel

// Slide is one entry in the carousel. The carousel never reads image data;
// ImageURL is passed through to the renderer.
type Slide struct {
	ImageURL string `yaml:"image_url"`
	Title    string `yaml:"title,omitempty"`
	Subtitle string `yaml:"subtitle,omitempty"`
}

// Collection is an immutable ordered sequence of slides.
type Collection struct {
	slides []Slide
}

// NewCollection copies the slide records so later changes to the caller's
// slice do not leak into the carousel.
func NewCollection(slides []Slide) Collection {
	if len(slides) == 0 {
		return Collection{}
	}
	cp := make([]Slide, len(slides))
	copy(cp, slides)
	return Collection{slides: cp}
}

// Len returns the number of slides.
func (c Collection) Len() int { return len(c.slides) }

// At returns the slide at index i. ok is false when i is out of range.
func (c Collection) At(i int) (slide Slide, ok bool) {
	if i < 0 || i >= len(c.slides) {
		return Slide{}, false
	}
	return c.slides[i], true
}

// Slides returns a copy of the slides, for renderers that draw thumbnails.
func (c Collection) Slides() []Slide {
	if len(c.slides) == 0 {
		return nil
	}
	cp := make([]Slide, len(c.slides))
	copy(cp, c.slides)
	return cp
}
