package middleware

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает частоту запросов с одного IP (token bucket на клиента)
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int
	proxies  TrustedProxies
	logger   Logger
}

// NewRateLimiter создает ограничитель. burst <= 0 заменяется на 1.
// X-Forwarded-For учитывается только от адресов из proxies.
func NewRateLimiter(rps float64, burst int, proxies TrustedProxies, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, proxies: proxies, logger: logger}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return actual.(*rate.Limiter)
}

// Middleware отвечает 429 с Retry-After, когда бюджет клиента исчерпан
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := l.proxies.ClientIP(r)
			reservation := l.limiter(ip).Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				l.logger.Warn("RateLimit: %s %s throttled for ip=%s", r.Method, r.URL.Path, ip)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Cleanup периодически забывает клиентов, чей бюджет полностью восстановился
func (l *RateLimiter) Cleanup(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			l.limiters.Range(func(k, v interface{}) bool {
				if v.(*rate.Limiter).Tokens() >= float64(l.burst) {
					l.limiters.Delete(k)
				}
				return true
			})
		}
	}
}

// TrustedProxies адреса и подсети обратных прокси, которым разрешено передавать X-Forwarded-For
type TrustedProxies []*net.IPNet

// ParseTrustedProxies разбирает список IP и CIDR
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	proxies := make(TrustedProxies, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", e)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			proxies = append(proxies, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, network, err := net.ParseCIDR(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
		}
		proxies = append(proxies, network)
	}
	return proxies, nil
}

func (p TrustedProxies) contains(ip net.IP) bool {
	for _, network := range p {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP адрес клиента. Цепочка X-Forwarded-For разбирается справа налево,
// пока адреса принадлежат доверенным прокси; без доверенного RemoteAddr заголовок игнорируется.
func (p TrustedProxies) ClientIP(r *http.Request) string {
	remote := remoteHost(r)
	ip := net.ParseIP(remote)
	if ip == nil || !p.contains(ip) {
		return remote
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return remote
	}
	hops := strings.Split(xff, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		hopIP := net.ParseIP(hop)
		if hopIP == nil {
			return remote
		}
		if !p.contains(hopIP) || i == 0 {
			return hop
		}
	}
	return remote
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
