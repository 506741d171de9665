package anim

// StepFunc 动画步进回调
// progress 为线性进度 [0, 1]，返回 true 表示提前结束动画（不再调用 onDone）
type StepFunc func(progress float64) (stop bool)

// Animation 基于帧回调的限时动画
//
// 每一帧调度下一帧之前都会检查自身是否已取消，
// 取消后不会再有任何回调被执行。
type Animation struct {
	scheduler *Scheduler
	frame     FrameHandle
	start     float64
	duration  float64
	onStep    StepFunc
	onDone    func()
	finished  bool
	cancelled bool
}

// Animate 启动一个持续 duration 秒的动画
//
// 参数:
//   - s: 调度器
//   - duration: 动画时长（秒），<= 0 时在下一帧直接完成
//   - onStep: 每帧回调（可为 nil）
//   - onDone: 进度到达 1 后调用一次（可为 nil）
func Animate(s *Scheduler, duration float64, onStep StepFunc, onDone func()) *Animation {
	a := &Animation{
		scheduler: s,
		start:     s.Now(),
		duration:  duration,
		onStep:    onStep,
		onDone:    onDone,
	}
	a.frame = s.RequestFrame(a.tick)
	return a
}

func (a *Animation) tick(now float64) {
	if a.cancelled || a.finished {
		return
	}

	progress := 1.0
	if a.duration > 0 {
		progress = (now - a.start) / a.duration
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	if a.onStep != nil && a.onStep(progress) {
		a.finished = true
		a.frame = 0
		return
	}
	// onStep 中可能取消了自己
	if a.cancelled {
		return
	}

	if progress >= 1 {
		a.finished = true
		a.frame = 0
		if a.onDone != nil {
			a.onDone()
		}
		return
	}

	a.frame = a.scheduler.RequestFrame(a.tick)
}

// Cancel 取消动画，对已完成或已取消的动画是空操作
func (a *Animation) Cancel() {
	if a == nil || a.cancelled || a.finished {
		return
	}
	a.cancelled = true
	a.scheduler.CancelFrame(a.frame)
	a.frame = 0
}

// Running 动画是否仍在进行
func (a *Animation) Running() bool {
	return a != nil && !a.cancelled && !a.finished
}
