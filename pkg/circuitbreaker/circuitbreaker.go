// Package circuitbreaker 熔断器
//
// 库存服务用它保护可选的外部依赖（Redis缓存）：
// Redis故障时每次Retrieve都要等到拨号超时，熔断后直接跳过缓存访问数据库，
// 过了Timeout再放少量请求探测Redis是否恢复。
//
// 状态转换：
//
//	CLOSED ──ReadyToTrip──► OPEN ──Timeout──► HALF_OPEN ──成功──► CLOSED
//	                          ▲                   │
//	                          └──────失败─────────┘
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 正常放行，统计失败
	StateClosed State = iota
	// StateOpen 快速失败，不调用下游
	StateOpen
	// StateHalfOpen 放行少量探测请求
	StateHalfOpen
)

// String 状态转字符串（日志、指标标签）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态允许的探测请求数，0按1处理
	MaxRequests uint32

	// Interval 关闭状态下的统计窗口，窗口结束清零计数；0表示不清零
	Interval time.Duration

	// Timeout 打开状态持续时间
	Timeout time.Duration

	// ReadyToTrip 关闭状态下每次失败后调用，返回true时熔断
	// 为nil时使用连续5次失败
	ReadyToTrip func(counts Counts) bool

	// OnStateChange 状态变化回调
	OnStateChange func(name string, from, to State)
}

// Counts 当前窗口内的统计
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// ErrOpenState 熔断器打开（或半开状态探测名额已满）
var ErrOpenState = errors.New("circuit breaker is open")

// ConsecutiveFailures 连续失败n次熔断
func ConsecutiveFailures(n uint32) func(Counts) bool {
	return func(c Counts) bool {
		return c.ConsecutiveFailures >= n
	}
}

// CircuitBreaker 熔断器，并发安全
type CircuitBreaker struct {
	name        string
	maxRequests uint32
	interval    time.Duration
	timeout     time.Duration
	readyToTrip func(Counts) bool
	onChange    func(name string, from, to State)
	now         func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃切换前发出的请求结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(name string, cfg Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:        name,
		maxRequests: cfg.MaxRequests,
		interval:    cfg.Interval,
		timeout:     cfg.Timeout,
		readyToTrip: cfg.ReadyToTrip,
		onChange:    cfg.OnStateChange,
		now:         time.Now,
	}
	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = ConsecutiveFailures(5)
	}
	if cb.interval > 0 {
		cb.expiry = cb.now().Add(cb.interval)
	}
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute 在熔断器保护下执行req
// 熔断时不调用req，直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, err == nil)
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

// currentState 处理到期：关闭状态清零统计窗口，打开状态转半开
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts = Counts{}

	switch state {
	case StateClosed:
		cb.expiry = time.Time{}
		if cb.interval > 0 {
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	if cb.onChange != nil {
		cb.onChange(cb.name, prev, state)
	}
}
