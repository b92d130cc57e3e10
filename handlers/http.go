// Package handlers contains http handlers for the facilitator.
package handlers

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"facilitator/domain"
	"facilitator/interfaces"
	"facilitator/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface on top of a registration store.
type HTTPServer struct {
	store  interfaces.RegistrationStore
	logger log.Logger
}

// NewHTTPServer creates a new HTTPServer.
func NewHTTPServer(store interfaces.RegistrationStore, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		store:  service.NilPanic(store, "handlers.http.go: store is required"),
		logger: log.WithPrefix(service.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// FetchRegistration (GET, any path) dequeues the oldest registration and writes it as the body.
// Returns 200 with an empty body when nothing is queued, 500 on store error.
func (h *HTTPServer) FetchRegistration(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	proxy := peerOf(ectx.Request())

	endpoint, ok, err := h.store.Take(ctx)
	if err != nil {
		return fmt.Errorf("fetchRegistration failed to take registration from store, err: %w", err)
	}

	if !ok {
		level.Info(h.logger).Log("msg", "proxy gets none", "proxy", proxy)
		h.logSize(ctx)
		return ectx.NoContent(http.StatusOK)
	}

	level.Info(h.logger).Log("msg", "proxy gets registration", "proxy", proxy, "reg", endpoint.String())
	h.logSize(ctx)
	return ectx.String(http.StatusOK, endpoint.String())
}

// RegisterClient (POST, any path) reads one "client=SPEC" line and queues the parsed endpoint.
// The connecting peer's host is the default host of SPEC. Malformed input is logged and
// answered with 400 and no body; 200 with no body otherwise, 500 on store error.
func (h *HTTPServer) RegisterClient(ectx echo.Context) error {
	ctx := ectx.Request().Context()
	client := peerOf(ectx.Request())

	line, err := readRegisterLine(ectx.Request().Body)
	if err != nil {
		return h.rejectRegistration(ectx, client, "", err)
	}

	spec, err := fromRegisterForm(line)
	if err != nil {
		return h.rejectRegistration(ectx, client, "", err)
	}

	endpoint, err := domain.Parse(spec, client.host, 0)
	if err != nil {
		return h.rejectRegistration(ectx, client, spec, err)
	}

	added, err := h.store.Add(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("registerClient failed to add registration to store, err: %w", err)
	}

	level.Info(h.logger).Log(
		"msg", "client regs",
		"client", client,
		"spec", spec,
		"reg", endpoint.String(),
		"already_present", !added,
	)
	h.logSize(ctx)
	return ectx.NoContent(http.StatusOK)
}

func (h *HTTPServer) rejectRegistration(ectx echo.Context, client peer, spec string, err error) error {
	keyvals := []interface{}{
		"msg", "client registration rejected",
		"client", client,
		"code", service.ToErrorCode(err),
		"err", err,
	}
	if spec != "" {
		keyvals = append(keyvals, "spec", spec)
	}
	level.Warn(h.logger).Log(keyvals...)
	return ectx.NoContent(http.StatusBadRequest)
}

func (h *HTTPServer) logSize(ctx context.Context) {
	n, err := h.store.Size(ctx)
	if err != nil {
		level.Error(h.logger).Log("msg", "failed to read number of registrations", "err", err)
		return
	}
	level.Info(h.logger).Log("msg", "num regs", "num_regs", n)
}

// peer is the remote socket address of a request.
type peer struct {
	host string
	port int
}

func peerOf(r *http.Request) peer {
	host, portStr, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return peer{host: r.RemoteAddr}
	}
	port, _ := strconv.Atoi(portStr)
	return peer{host: host, port: port}
}

func (p peer) String() string {
	return domain.FormatHostPort(p.host, p.port)
}
