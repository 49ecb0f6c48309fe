package shopapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"

	"github.com/DRSN-tech/shop-console/pkg/logger"
)

var errNonPublicTarget = errors.New("image host is not a public address")

// reservedPrefixes — диапазоны, которых нет среди методов netip.Addr.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("240.0.0.0/4"),
}

// ImageProbe проверяет, что по URL отдаётся изображение (аналог onError у <img>).
// Ходит только на публичные адреса: адрес проверяется при каждом соединении,
// включая редиректы.
type ImageProbe struct {
	httpClient   *http.Client
	logger       logger.Logger
	allowPrivate bool
}

func NewImageProbe(timeout time.Duration, logger logger.Logger) *ImageProbe {
	p := &ImageProbe{logger: logger}

	dialer := &net.Dialer{Timeout: timeout, Control: p.checkTarget}
	p.httpClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:       dialer.DialContext,
			DisableKeepAlives: true,
		},
	}

	return p
}

// Reachable делает HEAD, а если сервер его не поддерживает, то GET.
// Успех: 2xx и Content-Type image/* (или пустой Content-Type).
func (p *ImageProbe) Reachable(ctx context.Context, rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return false
	}

	status, contentType, err := p.probe(ctx, http.MethodHead, rawURL)
	if err == nil && (status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented) {
		status, contentType, err = p.probe(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		p.logger.Debugf("image probe %s failed: %v", rawURL, err)
		return false
	}

	if status < 200 || status > 299 {
		return false
	}

	return contentType == "" || strings.HasPrefix(contentType, "image/")
}

func (p *ImageProbe) probe(ctx context.Context, method, rawURL string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return 0, "", err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))

	return resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

// checkTarget вызывается после разрешения имени, до connect.
func (p *ImageProbe) checkTarget(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}

	if !p.allowPrivate && !isPublicAddr(addr) {
		return fmt.Errorf("%w: %s", errNonPublicTarget, addr)
	}

	return nil
}

func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()

	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() ||
		addr.IsInterfaceLocalMulticast() || addr.IsMulticast() {
		return false
	}

	for _, prefix := range reservedPrefixes {
		if prefix.Contains(addr) {
			return false
		}
	}

	return true
}
