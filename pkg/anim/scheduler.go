// Package anim 提供单线程协作式的帧回调与计时器调度
//
// 所有回调都在调用 Update 的 goroutine 中执行（即 ebiten 的 Update tick），
// 不存在并发写入。时间是游戏时间（秒），由 Update 的 deltaTime 累加得到，
// 测试中可以精确步进。
package anim

import "sort"

// FrameHandle 帧回调句柄，0 表示无效句柄
type FrameHandle uint64

// TimerHandle 计时器句柄，0 表示无效句柄
type TimerHandle uint64

// FrameFunc 帧回调，参数为当前游戏时间（秒）
type FrameFunc func(now float64)

// minInterval 防止间隔为 0 的计时器在一次 Update 内无限触发
const minInterval = 0.001

type frameEntry struct {
	handle FrameHandle
	fn     FrameFunc
}

type timerEntry struct {
	handle   TimerHandle
	due      float64
	interval float64 // 0 表示一次性计时器
	seq      uint64
	fn       func()
}

// Scheduler 帧回调与计时器调度器
//
// 语义：
//   - RequestFrame 注册的回调在下一次 Update 中执行一次（类似 requestAnimationFrame）
//   - SetTimeout/SetInterval 在游戏时间到达时执行
//   - 每次 Update 先触发到期计时器，再执行本次 Update 之前注册的帧回调
//   - 取消已失效或为 0 的句柄是空操作
type Scheduler struct {
	now     float64
	nextID  uint64
	nextSeq uint64

	frames []frameEntry
	// running 本次 Update 正在执行的帧回调
	running []frameEntry
	timers  map[TimerHandle]*timerEntry
}

// NewScheduler 创建调度器，游戏时间从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{
		frames: make([]frameEntry, 0, 8),
		timers: make(map[TimerHandle]*timerEntry),
	}
}

// Now 返回当前游戏时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// RequestFrame 注册下一帧回调
func (s *Scheduler) RequestFrame(fn FrameFunc) FrameHandle {
	s.nextID++
	h := FrameHandle(s.nextID)
	s.frames = append(s.frames, frameEntry{handle: h, fn: fn})
	return h
}

// CancelFrame 取消尚未执行的帧回调
func (s *Scheduler) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range s.frames {
		if s.frames[i].handle == h {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
	// 本次 Update 中尚未执行的回调
	for i := range s.running {
		if s.running[i].handle == h {
			s.running[i].fn = nil
			return
		}
	}
}

// SetTimeout 在 delay 秒后执行一次 fn
func (s *Scheduler) SetTimeout(delay float64, fn func()) TimerHandle {
	return s.addTimer(delay, 0, fn)
}

// SetInterval 每隔 interval 秒执行一次 fn，直到 ClearTimer
func (s *Scheduler) SetInterval(interval float64, fn func()) TimerHandle {
	if interval < minInterval {
		interval = minInterval
	}
	return s.addTimer(interval, interval, fn)
}

// ClearTimer 取消计时器
func (s *Scheduler) ClearTimer(h TimerHandle) {
	if h == 0 {
		return
	}
	delete(s.timers, h)
}

// IsTimerActive 检查计时器是否仍然有效
func (s *Scheduler) IsTimerActive(h TimerHandle) bool {
	_, ok := s.timers[h]
	return ok
}

// PendingFrames 返回等待执行的帧回调数量
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// ActiveTimers 返回有效计时器数量
func (s *Scheduler) ActiveTimers() int {
	return len(s.timers)
}

// Clear 取消所有帧回调和计时器
func (s *Scheduler) Clear() {
	s.frames = s.frames[:0]
	for i := range s.running {
		s.running[i].fn = nil
	}
	for h := range s.timers {
		delete(s.timers, h)
	}
}

// Update 推进游戏时间并执行到期回调
//
// 参数:
//   - deltaTime: 时间增量（秒）
func (s *Scheduler) Update(deltaTime float64) {
	if deltaTime < 0 {
		deltaTime = 0
	}
	s.now += deltaTime

	s.fireTimers()

	// 只执行本次 Update 之前注册的帧回调，回调中新注册的在下一帧执行
	s.running = s.frames
	s.frames = make([]frameEntry, 0, len(s.running))
	for i := range s.running {
		if fn := s.running[i].fn; fn != nil {
			s.running[i].fn = nil
			fn(s.now)
		}
	}
	s.running = nil
}

func (s *Scheduler) addTimer(delay, interval float64, fn func()) TimerHandle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.nextSeq++
	h := TimerHandle(s.nextID)
	s.timers[h] = &timerEntry{
		handle:   h,
		due:      s.now + delay,
		interval: interval,
		seq:      s.nextSeq,
		fn:       fn,
	}
	return h
}

// fireTimers 按到期时间顺序触发计时器
// 回调中可以取消或新增计时器，每次都重新挑选最早到期的一个
func (s *Scheduler) fireTimers() {
	for {
		due := s.dueTimers()
		if len(due) == 0 {
			return
		}
		t := due[0]

		if t.interval > 0 {
			t.due += t.interval
			s.nextSeq++
			t.seq = s.nextSeq
		} else {
			delete(s.timers, t.handle)
		}
		t.fn()
	}
}

func (s *Scheduler) dueTimers() []*timerEntry {
	var due []*timerEntry
	for _, t := range s.timers {
		if t.due <= s.now+1e-9 {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due
}
