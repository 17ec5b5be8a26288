package serve

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bgraf/randomimage/config"
	"github.com/bgraf/randomimage/images"
	"github.com/bgraf/randomimage/randomimage"
	"github.com/bgraf/randomimage/store"
	"github.com/bgraf/randomimage/title"
	"github.com/bgraf/randomimage/wikitext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// RegisterHook makes parser expand <randomimage> tags with hook.
func RegisterHook(parser *wikitext.Parser, hook randomimage.Hook) {
	parser.SetHook(randomimage.TagName, func(ctx context.Context, body string, attrs map[string]string, p *wikitext.Parser) string {
		return hook.Render(ctx, body, attrs, p)
	})
}

// Run serves the store on address until ctx is cancelled.
func Run(ctx context.Context, s *store.Store, settings config.Settings, address string, logger *zap.Logger) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:    address,
		Handler: newRouter(newServeAPI(s, settings, logger)),
	}

	errs := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("address", address))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type serveAPI struct {
	store    *store.Store
	settings config.Settings
	logger   *zap.Logger
	rand     randomimage.Rand
	urls     wikitext.URLs
}

func newServeAPI(s *store.Store, settings config.Settings, logger *zap.Logger) *serveAPI {
	return &serveAPI{
		store:    s,
		settings: settings,
		logger:   logger,
	}
}

func newRouter(api *serveAPI) *gin.Engine {
	r := gin.New()
	r.Use(api.requestLogger(), gin.Recovery())

	r.GET("/random", api.ServeRandom)
	r.GET("/file/:name", api.ServeFile)
	r.GET("/thumb/:width/:name", api.ServeThumb)
	r.GET("/page/:name", api.ServePage)

	return r
}

// requestLogger assigns a request id and logs every finished request.
func (api *serveAPI) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		api.logger.Debug("request",
			zap.String("id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (api *serveAPI) hook() randomimage.Hook {
	return randomimage.Hook{
		Deps:     randomimage.Deps{Store: api.store, Rand: api.rand, Logger: api.logger},
		Settings: api.settings,
	}
}

func (api *serveAPI) newParser() *wikitext.Parser {
	parser := wikitext.NewParser(api.urls, api.settings.ThumbWidth)
	RegisterHook(parser, api.hook())
	return parser
}

func setCacheHeader(c *gin.Context, parser *wikitext.Parser) {
	if !parser.Cacheable() {
		c.Header("Cache-Control", "no-store")
	}
}

func fileRef(c *gin.Context) (title.Reference, bool) {
	return title.MakeSafe(title.NamespaceFile, c.Param("name"))
}

// ServeRandom renders a single tag. The query parameters size, float and
// choices act as its attributes, caption as its body.
func (api *serveAPI) ServeRandom(c *gin.Context) {
	attrs := make(map[string]string)
	for _, name := range []string{randomimage.AttrSize, randomimage.AttrFloat, randomimage.AttrChoices} {
		if v, ok := c.GetQuery(name); ok {
			attrs[name] = v
		}
	}

	parser := api.newParser()
	out := api.hook().Render(c.Request.Context(), c.Query("caption"), attrs, parser)

	setCacheHeader(c, parser)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (api *serveAPI) ServeFile(c *gin.Context) {
	ref, ok := fileRef(c)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	path, ok, err := api.store.FilePath(c.Request.Context(), ref)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error")
		return
	}
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	c.File(path)
}

func (api *serveAPI) ServeThumb(c *gin.Context) {
	width, err := strconv.Atoi(c.Param("width"))
	if err != nil || width <= 0 || width > images.MaxThumbnailWidth {
		c.String(http.StatusNotFound, "not found")
		return
	}

	ref, ok := fileRef(c)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	path, ok, err := api.store.FilePath(c.Request.Context(), ref)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error")
		return
	}
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	var buf bytes.Buffer
	format, err := images.Thumbnail(&buf, path, width)
	if err != nil {
		api.logger.Warn("thumbnail failed", zap.Stringer("file", ref), zap.Error(err))
		c.String(http.StatusUnprocessableEntity, "cannot create thumbnail")
		return
	}

	c.Data(http.StatusOK, images.ContentType(format), buf.Bytes())
}

// ServePage renders the description page of a file. Caption markers are
// removed, <randomimage> tags in the text are expanded.
func (api *serveAPI) ServePage(c *gin.Context) {
	ref, ok := fileRef(c)
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	text, exists, err := api.store.PageText(c.Request.Context(), ref)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error")
		return
	}
	if !exists {
		c.String(http.StatusNotFound, "not found")
		return
	}

	parser := api.newParser()
	out, err := parser.Parse(c.Request.Context(), randomimage.StripCaptionTags(text))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "error")
		return
	}

	setCacheHeader(c, parser)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}
