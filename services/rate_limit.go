package services

import (
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// Route classes with independent windows and ceilings. Windows are sized
// inversely to abuse sensitivity, and each class counts separately so a
// burst in one cannot starve another.
const (
	RateClassLogin    = "login"
	RateClassRegister = "register"
	RateClassUpload   = "upload"
	RateClassSearch   = "search"
	RateClassGeneral  = "api_general"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig

	mutex   sync.Mutex
	windows map[string]*rateWindow

	// injectable for tests
	now func() time.Time
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
	IsActive     bool
}

// rateWindow is the shared mutable counter for one scope key. Mutation only
// happens under the service mutex so a check-and-increment is atomic.
type rateWindow struct {
	count       int
	windowStart time.Time
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.windows = make(map[string]*rateWindow)
	svc.now = time.Now
	svc.initDefaultConfigs()
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	go svc.startCleanupJob()
	return nil
}

func (svc *RateLimitService) initDefaultConfigs() {
	svc.configs = map[string]*RateLimitConfig{
		RateClassLogin: {
			EndpointType: RateClassLogin,
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
			IsActive:     true,
		},
		RateClassRegister: {
			EndpointType: RateClassRegister,
			MaxRequests:  3,
			WindowSize:   60 * time.Minute,
			Description:  "Registration rate limit",
			IsActive:     true,
		},
		RateClassUpload: {
			EndpointType: RateClassUpload,
			MaxRequests:  10,
			WindowSize:   60 * time.Minute,
			Description:  "Content upload rate limit",
			IsActive:     true,
		},
		RateClassSearch: {
			EndpointType: RateClassSearch,
			MaxRequests:  10,
			WindowSize:   60 * time.Second,
			Description:  "Admin search rate limit",
			IsActive:     true,
		},
		RateClassGeneral: {
			EndpointType: RateClassGeneral,
			MaxRequests:  100,
			WindowSize:   15 * time.Minute,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

// ==================== CORE RATE LIMITING LOGIC ====================

// IsAllowed performs an atomic check-and-increment for one scope key.
// Admission increments the counter; the first event of a fresh window
// resets the window start. A rejection never mutates the counter.
func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, *dto.RateLimitInfo) {
	config, exists := svc.configs[endpointType]
	if !exists || !config.IsActive {
		// No config or inactive: allow the request
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: -1,
		}
	}

	scopeKey := identifier + ":" + endpointType

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()

	window, ok := svc.windows[scopeKey]
	if !ok || now.Sub(window.windowStart) >= config.WindowSize {
		window = &rateWindow{count: 1, windowStart: now}
		svc.windows[scopeKey] = window

		resetTime := now.Add(config.WindowSize)
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Remaining: config.MaxRequests - 1,
			ResetTime: &resetTime,
		}
	}

	resetTime := window.windowStart.Add(config.WindowSize)

	if window.count >= config.MaxRequests {
		return false, &dto.RateLimitInfo{
			Allowed:   false,
			Remaining: 0,
			ResetTime: &resetTime,
		}
	}

	window.count++
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: config.MaxRequests - window.count,
		ResetTime: &resetTime,
	}
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit creates a rate limiting middleware for one route class, keyed
// by client IP.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := getClientIP(c)

		allowed, info := svc.IsAllowed(identifier, endpointType)

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

// UserBasedRateLimit keys the window on the authenticated user, falling
// back to IP for anonymous traffic.
func (svc *RateLimitService) UserBasedRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier, _ := c.Locals(shared.UserID).(string)
		if identifier == "" {
			identifier = getClientIP(c)
		}

		allowed, info := svc.IsAllowed(identifier, endpointType)

		svc.addRateLimitHeaders(c, info)

		if !allowed {
			return svc.handleRateLimitExceeded(c, endpointType, info)
		}

		return c.Next()
	}
}

// IPRateLimit applies the general API ceiling by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return svc.RateLimit(RateClassGeneral)
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := svc.getRateLimitMessage(endpointType)

	retryAfter := 0
	if info.ResetTime != nil {
		retryAfter = int(info.ResetTime.Sub(svc.now()).Seconds())
		if retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}

	rateLimitRejectionsTotal.WithLabelValues(endpointType).Inc()

	return shared.NewRateLimitError(message, retryAfter)
}

func (svc *RateLimitService) getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		RateClassLogin:    "Too many login attempts. Please try again later.",
		RateClassRegister: "Too many registration attempts. Please try again later.",
		RateClassUpload:   "Too many uploads. Please try again later.",
		RateClassSearch:   "Too many search requests. Please slow down.",
		RateClassGeneral:  "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

// ==================== BACKGROUND JOBS ====================

// startCleanupJob drops expired windows so the scope map does not grow
// unbounded under churning client identities.
func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		svc.cleanupExpiredWindows()
	}
}

func (svc *RateLimitService) cleanupExpiredWindows() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	now := svc.now()
	for key, window := range svc.windows {
		endpointType := key[strings.LastIndex(key, ":")+1:]
		config, exists := svc.configs[endpointType]
		if !exists || now.Sub(window.windowStart) >= config.WindowSize {
			delete(svc.windows, key)
		}
	}
}

// ==================== PUBLIC METHODS ====================

func (svc *RateLimitService) GetRemainingRequests(identifier, endpointType string) int {
	config, exists := svc.configs[endpointType]
	if !exists {
		return -1
	}

	scopeKey := identifier + ":" + endpointType

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	window, ok := svc.windows[scopeKey]
	if !ok || svc.now().Sub(window.windowStart) >= config.WindowSize {
		return config.MaxRequests
	}

	remaining := config.MaxRequests - window.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (svc *RateLimitService) ResetRateLimit(identifier, endpointType string) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	delete(svc.windows, identifier+":"+endpointType)
}
