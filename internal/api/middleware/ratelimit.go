package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-FleetBookingService/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов, повторите позже"

// IPRateLimiter хранит отдельный token bucket на каждый IP
// Лимитер, к которому не обращались дольше idleTTL, удаляется
type IPRateLimiter struct {
	limiters *cache.Cache
	mu       sync.Mutex
	r        rate.Limit
	b        int
	trusted  []*net.IPNet
}

// NewIPRateLimiter trustedProxies - IP или CIDR прокси, которым разрешено передавать X-Forwarded-For
func NewIPRateLimiter(r rate.Limit, b int, idleTTL time.Duration, trustedProxies []string) (*IPRateLimiter, error) {
	trusted, err := parseTrustedProxies(trustedProxies)
	if err != nil {
		return nil, err
	}

	return &IPRateLimiter{
		limiters: cache.New(idleTTL, idleTTL),
		r:        r,
		b:        b,
		trusted:  trusted,
	}, nil
}

// GetLimiter возвращает лимитер IP, создавая его при первом обращении
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	if stored, found := i.limiters.Get(ip); found {
		limiter := stored.(*rate.Limiter)
		// продлеваем срок жизни
		i.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	i.limiters.SetDefault(ip, limiter)
	return limiter
}

// Size количество отслеживаемых IP
func (i *IPRateLimiter) Size() int {
	return i.limiters.ItemCount()
}

// RateLimit ограничивает частоту запросов с одного IP, при превышении 429
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.GetLimiter(clientIP(r, limiter.trusted)).Allow() {
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берет адрес соединения. X-Forwarded-For учитывается только если соединение
// пришло от доверенного прокси: адреса разбираются справа налево до первого недоверенного
func clientIP(r *http.Request, trusted []*net.IPNet) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !isTrusted(host, trusted) {
		return host
	}

	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return host
	}

	hops := strings.Split(forwarded, ",")
	for idx := len(hops) - 1; idx >= 0; idx-- {
		hop := strings.TrimSpace(hops[idx])
		if hop == "" {
			continue
		}
		if !isTrusted(hop, trusted) {
			return hop
		}
		host = hop
	}
	return host
}

func isTrusted(ip string, trusted []*net.IPNet) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(parsed) {
			return true
		}
	}
	return false
}

func parseTrustedProxies(proxies []string) ([]*net.IPNet, error) {
	networks := make([]*net.IPNet, 0, len(proxies))
	for _, proxy := range proxies {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}

		if !strings.Contains(proxy, "/") {
			ip := net.ParseIP(proxy)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", proxy)
			}
			bits := 32
			if ip.To4() == nil {
				bits = 128
			}
			networks = append(networks, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, network, err := net.ParseCIDR(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", proxy, err)
		}
		networks = append(networks, network)
	}
	return networks, nil
}
