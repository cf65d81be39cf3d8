package ui

import (
	"fmt"
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/wari-market/wari/internal/catalog"
	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/logging"
	"github.com/wari-market/wari/internal/service"
)

const (
	maxCards     = 12
	maxRows      = 2
	cardWidth    = 240
	cardHeight   = 280
	cardSpacing  = 20
	photoHeight  = 180
	filterHeight = 36
	filterWidth  = 180
)

// thumbnailJob represents a request to load a product photo.
type thumbnailJob struct {
	path string
}

// thumbnailResult holds a decoded image, ready to be converted to an ebiten.Image.
type thumbnailResult struct {
	path string
	img  image.Image
}

type filterField struct {
	label string
	get   func(catalog.Product) string
	set   func(*catalog.Filter, string)
}

var filterFields = []filterField{
	{"Origen", func(p catalog.Product) string { return p.Origin }, func(f *catalog.Filter, v string) { f.Origin = v }},
	{"Color", func(p catalog.Product) string { return p.Color }, func(f *catalog.Filter, v string) { f.Color = v }},
	{"Calidad", func(p catalog.Product) string { return p.Quality }, func(f *catalog.Filter, v string) { f.Quality = v }},
}

// CatalogView draws the filter bar and the product grid.
type CatalogView struct {
	logger       *zap.Logger
	catalogState *catalog.State
	imageService *service.ImageService

	thumbCache    map[string]*ebiten.Image
	pendingJobs   map[string]bool
	failed        map[string]bool
	jobQueue      chan thumbnailJob
	resultQueue   chan thumbnailResult
	cacheMu       sync.RWMutex
	pendingJobsMu sync.Mutex

	area gesture.Rect
	// page is the grid page shown, clamped to the filtered count every frame.
	page int
}

// NewCatalogView creates the view and starts its photo loaders.
func NewCatalogView(logger *zap.Logger, cs *catalog.State, ivs *service.ImageService) *CatalogView {
	cv := &CatalogView{
		logger:       logging.OrNop(logger),
		catalogState: cs,
		imageService: ivs,
		thumbCache:   make(map[string]*ebiten.Image),
		pendingJobs:  make(map[string]bool),
		failed:       make(map[string]bool),
		jobQueue:     make(chan thumbnailJob, 50),
		resultQueue:  make(chan thumbnailResult, 50),
	}

	go cv.loader()
	go cv.loader()

	return cv
}

// SetArea places the view on screen for this frame.
func (cv *CatalogView) SetArea(r gesture.Rect) {
	cv.area = r
}

// loader is a background worker that decodes product photos.
func (cv *CatalogView) loader() {
	for job := range cv.jobQueue {
		img, err := cv.imageService.LoadThumbnail(job.path)
		if err != nil {
			cv.logger.Warn("loading product photo", zap.String("path", job.path), zap.Error(err))
			cv.pendingJobsMu.Lock()
			delete(cv.pendingJobs, job.path)
			cv.failed[job.path] = true
			cv.pendingJobsMu.Unlock()
			continue
		}
		// ebiten.Image creation happens on the main thread in Update.
		cv.resultQueue <- thumbnailResult{path: job.path, img: img}
	}
}

// Update turns decoded photos into textures and queues photos for visible cards.
func (cv *CatalogView) Update() {
	processing := true
	for processing {
		select {
		case result := <-cv.resultQueue:
			ebitenImg := ebiten.NewImageFromImage(result.img)
			cv.cacheMu.Lock()
			cv.thumbCache[result.path] = ebitenImg
			cv.cacheMu.Unlock()

			cv.pendingJobsMu.Lock()
			delete(cv.pendingJobs, result.path)
			cv.pendingJobsMu.Unlock()
		default:
			processing = false
		}
	}

	cv.page = catalog.ClampPage(cv.page, cv.catalogState.Count(), cv.pageSize())
	for _, item := range cv.window() {
		path := cv.imageService.Resolve(item.Item.Image)
		if path == "" || !cv.imageService.Supported(path) {
			continue
		}

		cv.cacheMu.RLock()
		_, inCache := cv.thumbCache[path]
		cv.cacheMu.RUnlock()
		if inCache {
			continue
		}

		cv.pendingJobsMu.Lock()
		if !cv.pendingJobs[path] && !cv.failed[path] {
			cv.pendingJobs[path] = true
			select {
			case cv.jobQueue <- thumbnailJob{path: path}:
			default:
				// Queue full, retry next frame.
				delete(cv.pendingJobs, path)
			}
		}
		cv.pendingJobsMu.Unlock()
	}
}

func (cv *CatalogView) filterButtons() []Button {
	f := cv.catalogState.Filter()
	values := []string{f.Origin, f.Color, f.Quality}
	buttons := make([]Button, 0, len(filterFields)+1)
	x := cv.area.X
	for i, field := range filterFields {
		v := values[i]
		if v == "" || v == catalog.All {
			v = "todos"
		}
		buttons = append(buttons, Button{
			Rect:  gesture.Rect{X: x, Y: cv.area.Y, W: filterWidth, H: filterHeight},
			Label: fmt.Sprintf("%s: %s", field.label, v),
		})
		x += filterWidth + 10
	}
	buttons = append(buttons, Button{
		Rect:    gesture.Rect{X: x, Y: cv.area.Y, W: 100, H: filterHeight},
		Label:   "Limpiar",
		Primary: cv.catalogState.IsFiltered(),
	})
	return buttons
}

func (cv *CatalogView) columns() int {
	n := int((cv.area.W + cardSpacing) / (cardWidth + cardSpacing))
	if n < 1 {
		n = 1
	}
	return n
}

// pageSize is how many cards fit in the grid for the current width.
func (cv *CatalogView) pageSize() int {
	return min(maxCards, cv.columns()*maxRows)
}

// window returns the cards of the current page.
func (cv *CatalogView) window() []catalog.WindowItem {
	size := cv.pageSize()
	return cv.catalogState.Window(cv.page*size, size)
}

// pager returns the previous and next page buttons under the grid.
func (cv *CatalogView) pager() (prev, next Button) {
	y := cv.area.Y + filterHeight + cardSpacing + maxRows*(cardHeight+cardSpacing) - cardSpacing + 8
	prev = Button{Rect: gesture.Rect{X: cv.area.X, Y: y, W: 110, H: filterHeight}, Label: "< Anterior"}
	next = Button{Rect: gesture.Rect{X: cv.area.X + 250, Y: y, W: 110, H: filterHeight}, Label: "Siguiente >"}
	return prev, next
}

// Page returns the zero-based page shown and the number of pages.
func (cv *CatalogView) Page() (int, int) {
	return cv.page, cv.catalogState.Pages(cv.pageSize())
}

// Turn moves delta pages, staying within the filtered list.
func (cv *CatalogView) Turn(delta int) {
	cv.page = catalog.ClampPage(cv.page+delta, cv.catalogState.Count(), cv.pageSize())
}

func (cv *CatalogView) cardRect(i int) gesture.Rect {
	cols := cv.columns()
	return gesture.Rect{
		X: cv.area.X + float64(i%cols)*(cardWidth+cardSpacing),
		Y: cv.area.Y + filterHeight + cardSpacing + float64(i/cols)*(cardHeight+cardSpacing),
		W: cardWidth,
		H: cardHeight,
	}
}

// Click handles a click at screen coordinates. Filter selectors cycle through
// their options; a click on a card returns its product.
func (cv *CatalogView) Click(x, y float64) (catalog.Product, bool) {
	buttons := cv.filterButtons()
	for i, b := range buttons {
		if !b.Hit(x, y) {
			continue
		}
		cv.page = 0
		if i == len(filterFields) {
			cv.catalogState.ClearFilter()
			return catalog.Product{}, false
		}
		field := filterFields[i]
		f := cv.catalogState.Filter()
		field.set(&f, catalog.Next(catalog.Options(cv.catalogState.All(), field.get), field.get(productOf(f))))
		n := cv.catalogState.ApplyFilter(f)
		cv.logger.Debug("catalog filtered", zap.Int("visible", n))
		return catalog.Product{}, false
	}

	if _, pages := cv.Page(); pages > 1 {
		prev, next := cv.pager()
		switch {
		case prev.Hit(x, y):
			cv.Turn(-1)
			return catalog.Product{}, false
		case next.Hit(x, y):
			cv.Turn(1)
			return catalog.Product{}, false
		}
	}

	for i, item := range cv.window() {
		if !cv.cardRect(i).Contains(x, y) {
			continue
		}
		p, err := cv.catalogState.Get(item.ViewIndex)
		if err != nil {
			cv.logger.Warn("catalog card out of range", zap.Int("index", item.ViewIndex), zap.Error(err))
			return catalog.Product{}, false
		}
		return p, true
	}
	return catalog.Product{}, false
}

// productOf lets the field accessors read selector values out of a Filter.
func productOf(f catalog.Filter) catalog.Product {
	return catalog.Product{Origin: f.Origin, Color: f.Color, Quality: f.Quality}
}

// Draw renders the filter bar and the visible cards.
func (cv *CatalogView) Draw(screen *ebiten.Image) {
	for _, b := range cv.filterButtons() {
		b.Draw(screen)
	}

	if cv.catalogState.Empty() {
		Text(screen, "No hay productos que coincidan con los filtros.", cv.area.X, cv.area.Y+filterHeight+cardSpacing, ColorGrey)
		return
	}

	cv.cacheMu.RLock()
	defer cv.cacheMu.RUnlock()

	if page, pages := cv.Page(); pages > 1 {
		prev, next := cv.pager()
		prev.Draw(screen)
		next.Draw(screen)
		label := fmt.Sprintf("Página %d de %d", page+1, pages)
		TextCentered(screen, label, gesture.Rect{X: prev.Rect.X + prev.Rect.W, Y: prev.Rect.Y, W: next.Rect.X - prev.Rect.X - prev.Rect.W, H: prev.Rect.H}, ColorGrey)
	}

	for i, item := range cv.window() {
		r := cv.cardRect(i)
		Panel(screen, r)
		photo := gesture.Rect{X: r.X, Y: r.Y, W: r.W, H: photoHeight}
		FillRect(screen, photo, ColorCream)

		if thumb, ok := cv.thumbCache[cv.imageService.Resolve(item.Item.Image)]; ok {
			op := &ebiten.DrawImageOptions{}
			imgW, imgH := thumb.Bounds().Dx(), thumb.Bounds().Dy()
			scale := photo.W / float64(imgW)
			if hScale := photo.H / float64(imgH); hScale < scale {
				scale = hScale
			}
			op.GeoM.Scale(scale, scale)
			op.GeoM.Translate(photo.X+(photo.W-float64(imgW)*scale)/2, photo.Y+(photo.H-float64(imgH)*scale)/2)
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(thumb, op)
		} else {
			TextCentered(screen, item.Item.Color, photo, ColorGrey)
		}

		vector.StrokeLine(screen, float32(r.X), float32(r.Y+photoHeight), float32(r.X+r.W), float32(r.Y+photoHeight), 1, ColorCream, false)
		Text(screen, item.Item.Name, r.X+12, r.Y+photoHeight+12, ColorDark)
		Text(screen, fmt.Sprintf("%s / %s", item.Item.Origin, item.Item.Quality), r.X+12, r.Y+photoHeight+12+LineHeight, ColorGrey)
		Text(screen, fmt.Sprintf("S/ %g /kg", item.Item.PricePerKg), r.X+12, r.Y+photoHeight+12+3*LineHeight, ColorTerracotta)
	}
}

// Close stops the photo loaders.
func (cv *CatalogView) Close() {
	close(cv.jobQueue)
}
