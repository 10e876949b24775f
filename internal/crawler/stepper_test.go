package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/seo-audit-service/internal/entity"
)

type fakeFetcher struct {
	pages map[string]*entity.Page
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*entity.Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return nil, errors.New("no route to host")
}

func page(url string, links ...string) *entity.Page {
	var b strings.Builder
	b.WriteString("<body>")
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">x</a>`, l)
	}
	b.WriteString("</body>")
	return &entity.Page{URL: url, StatusCode: http.StatusOK, Body: []byte(b.String())}
}

const seed = "http://site.test/"

func TestStepperStep(t *testing.T) {
	t.Run("first poll expands the seed within the step budget", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed:                 page(seed, "/a", "/b", "/c"),
			"http://site.test/a": page("http://site.test/a", "/d"),
		}}
		task := entity.NewCrawlTask(seed)

		NewStepper(f, 2, 100).Step(context.Background(), task)

		assert.Equal(t, []string{
			"http://site.test/a",
			"http://site.test/b",
			"http://site.test/c",
			"http://site.test/d",
		}, task.URLs)
		assert.Equal(t, 4, task.TotalFound)
		assert.Equal(t, 4, task.Progress)
		assert.Equal(t, entity.StatusInProgress, task.Status)
		// budget of 2: seed plus the first newly found link
		assert.Equal(t, []string{seed, "http://site.test/a"}, f.calls)
	})

	t.Run("subsequent polls do not revisit previously discovered URLs", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed: page(seed, "/a"),
		}}
		task := entity.NewCrawlTask(seed)
		stepper := NewStepper(f, 2, 100)

		stepper.Step(context.Background(), task)
		first := append([]string(nil), task.URLs...)

		stepper.Step(context.Background(), task)

		assert.Equal(t, first, task.URLs)
		// second call had an empty frontier, so nothing was fetched
		assert.Len(t, f.calls, 2)
	})

	t.Run("drops cross-origin links and duplicates", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed: page(seed, "/a", "/a", "http://other.test/x", "/a#frag"),
		}}
		task := entity.NewCrawlTask(seed)

		NewStepper(f, 2, 100).Step(context.Background(), task)

		assert.Equal(t, []string{"http://site.test/a"}, task.URLs)
	})

	t.Run("fetch failure is silent and costs a step", func(t *testing.T) {
		f := &fakeFetcher{errs: map[string]error{seed: errors.New("connection refused")}}
		task := entity.NewCrawlTask(seed)

		NewStepper(f, 2, 100).Step(context.Background(), task)

		assert.Empty(t, task.URLs)
		assert.Equal(t, 0, task.Progress)
		assert.Equal(t, entity.StatusInProgress, task.Status)
		assert.Empty(t, task.Error)
	})

	t.Run("non-200 response skips extraction without surfacing an error", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed: {URL: seed, StatusCode: http.StatusNotFound, Body: []byte(`<a href="/a">x</a>`)},
		}}
		task := entity.NewCrawlTask(seed)

		NewStepper(f, 2, 100).Step(context.Background(), task)

		assert.Empty(t, task.URLs)
		assert.Empty(t, task.Error)
	})

	t.Run("caps discovered URLs and completes at 100", func(t *testing.T) {
		links := make([]string, 150)
		for i := range links {
			links[i] = fmt.Sprintf("/p/%d", i)
		}
		f := &fakeFetcher{pages: map[string]*entity.Page{seed: page(seed, links...)}}
		task := entity.NewCrawlTask(seed)

		NewStepper(f, 2, 100).Step(context.Background(), task)

		assert.Len(t, task.URLs, 100)
		assert.Equal(t, 100, task.TotalFound)
		assert.Equal(t, 100, task.Progress)
		assert.Equal(t, entity.StatusComplete, task.Status)
	})

	t.Run("repeated polling is finite and monotone for a small site", func(t *testing.T) {
		f := &fakeFetcher{pages: map[string]*entity.Page{
			seed:                 page(seed, "/a", "/b"),
			"http://site.test/a": page("http://site.test/a", "/c", "/"),
			"http://site.test/b": page("http://site.test/b", "/a"),
			"http://site.test/c": page("http://site.test/c"),
		}}
		task := entity.NewCrawlTask(seed)
		stepper := NewStepper(f, 2, 100)

		prev := 0
		for i := 0; i < 10; i++ {
			stepper.Step(context.Background(), task)
			require.GreaterOrEqual(t, len(task.URLs), prev)
			prev = len(task.URLs)
		}

		seen := map[string]int{}
		for _, u := range task.URLs {
			seen[u]++
			assert.Equal(t, 1, seen[u], u)
		}
		assert.LessOrEqual(t, len(task.URLs), 100)
	})
}
