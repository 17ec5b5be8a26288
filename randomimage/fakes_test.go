package randomimage

import (
	"context"
	"errors"

	"github.com/bgraf/randomimage/title"
)

type sampleCall struct {
	filter    SampleFilter
	threshold float64
}

// fakeStore answers samples from a queue and pages/files from maps.
type fakeStore struct {
	samples   []title.Reference // consumed in order; zero value means "no row"
	sampleErr error
	calls     []sampleCall
	files     map[string]bool
	fileErr   error
	pages     map[string]string
	pageErr   error
	pageCalls int
}

func (s *fakeStore) SampleOne(ctx context.Context, filter SampleFilter, threshold float64) (title.Reference, bool, error) {
	s.calls = append(s.calls, sampleCall{filter, threshold})

	if s.sampleErr != nil {
		return title.Reference{}, false, s.sampleErr
	}

	if len(s.samples) == 0 {
		return title.Reference{}, false, nil
	}

	ref := s.samples[0]
	s.samples = s.samples[1:]

	return ref, ref.DBKey != "", nil
}

func (s *fakeStore) FileExists(ctx context.Context, ref title.Reference) (bool, error) {
	if s.fileErr != nil {
		return false, s.fileErr
	}
	return s.files[ref.DBKey], nil
}

func (s *fakeStore) PageText(ctx context.Context, ref title.Reference) (string, bool, error) {
	s.pageCalls++
	if s.pageErr != nil {
		return "", false, s.pageErr
	}
	text, ok := s.pages[ref.DBKey]
	return text, ok, nil
}

// fakeRand returns fixed values and counts calls.
type fakeRand struct {
	float      float64
	intn       int
	floatCalls int
	intnCalls  int
}

func (r *fakeRand) Float64() float64 {
	r.floatCalls++
	return r.float
}

func (r *fakeRand) Intn(n int) int {
	r.intnCalls++
	return r.intn % n
}

// fakeParser records its input and returns a canned fragment.
type fakeParser struct {
	html         string
	err          error
	markup       []string
	cacheDisable int
}

func (p *fakeParser) RecursiveTagParse(ctx context.Context, markup string) (string, error) {
	p.markup = append(p.markup, markup)
	return p.html, p.err
}

func (p *fakeParser) DisableCache() {
	p.cacheDisable++
}

var errBoom = errors.New("boom")

func mustRef(name string) title.Reference {
	ref, ok := title.MakeSafe(title.NamespaceFile, name)
	if !ok {
		panic("invalid test title " + name)
	}
	return ref
}
