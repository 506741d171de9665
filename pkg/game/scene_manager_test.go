package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene 记录调用情况的场景
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// saveableScene 额外实现 Saveable
type saveableScene struct {
	MockScene
	saves  int
	result bool
}

func (s *saveableScene) SaveOnExit() bool {
	s.saves++
	return s.result
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no active scene initially")
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // 没有场景时不 panic

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %.3f", mockScene.deltaTime)
	}
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(64, 64)
	sm.Draw(screen)

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSwitchToSavesPreviousScene(t *testing.T) {
	sm := NewSceneManager()
	first := &saveableScene{result: true}
	second := &MockScene{}

	sm.SwitchTo(first)
	sm.SwitchTo(first) // 同一场景不触发保存
	if first.saves != 0 {
		t.Fatalf("switching to the same scene must not save, saves=%d", first.saves)
	}

	sm.SwitchTo(second)
	if first.saves != 1 {
		t.Errorf("previous scene should be saved once, saves=%d", first.saves)
	}
	if sm.GetCurrentScene() != second {
		t.Error("SwitchTo did not set the current scene")
	}

	sm.Update(0.016)
	if first.updateCalled {
		t.Error("inactive scene must not be updated")
	}
}

func TestShutdown(t *testing.T) {
	sm := NewSceneManager()
	if !sm.Shutdown() {
		t.Error("Shutdown without scene should succeed")
	}

	sm.SwitchTo(&MockScene{})
	if !sm.Shutdown() {
		t.Error("Shutdown with a non-saveable scene should succeed")
	}

	failing := &saveableScene{result: false}
	sm.SwitchTo(failing)
	if sm.Shutdown() {
		t.Error("Shutdown should report save failure")
	}
	if failing.saves != 1 {
		t.Errorf("saves: got %d, want 1", failing.saves)
	}
}
