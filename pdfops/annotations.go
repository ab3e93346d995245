package pdfops

// ExtractAnnotations walks the /Annots array of every page and returns the
// annotations it finds: type, content, author, rectangle, and timestamps.
// Pages without annotations contribute nothing.
func ExtractAnnotations(path string) ([]Annotation, error) {
	r, closeFn, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	var annots []Annotation
	for n := 1; n <= r.NumPage(); n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			continue
		}
		arr := p.V.Key("Annots")
		if arr.IsNull() {
			continue
		}
		for i := 0; i < arr.Len(); i++ {
			a := arr.Index(i)
			if a.IsNull() {
				continue
			}
			annot := Annotation{
				Page:     n,
				Type:     a.Key("Subtype").Name(),
				Content:  a.Key("Contents").Text(),
				Author:   a.Key("T").Text(),
				Created:  a.Key("CreationDate").Text(),
				Modified: a.Key("M").Text(),
			}
			if rect := a.Key("Rect"); rect.Len() == 4 {
				for j := 0; j < 4; j++ {
					annot.Rect[j] = rect.Index(j).Float64()
				}
			}
			annots = append(annots, annot)
		}
	}
	return annots, nil
}
