package ecs

import "testing"

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if em.EntityCount() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	pos, found := GetComponent[*testPositionComponent](em, id)
	if !found {
		t.Fatal("Component should be found")
	}
	if pos.X != 100 || pos.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", pos.X, pos.Y)
	}

	if _, found := GetComponent[*testVelocityComponent](em, id); found {
		t.Error("Velocity component should not be found")
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("HasComponent should report position component")
	}
}

func TestAddComponentToUnknownEntity(t *testing.T) {
	em := NewEntityManager()
	em.AddComponent(EntityID(99), &testPositionComponent{})

	if em.HasEntity(99) {
		t.Error("AddComponent must not create entities implicitly")
	}
}

func TestDestroyEntityIsDeferred(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)
	if !em.HasEntity(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()
	if em.HasEntity(id) {
		t.Error("Entity should be removed after RemoveMarkedEntities")
	}
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Removed entity should have no components")
	}

	// 重复清理是空操作
	em.RemoveMarkedEntities()
}

func TestGetEntitiesWith1Ordered(t *testing.T) {
	em := NewEntityManager()
	var withPos []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		if i%2 == 0 {
			em.AddComponent(id, &testPositionComponent{X: float64(i)})
			withPos = append(withPos, id)
		} else {
			em.AddComponent(id, &testVelocityComponent{})
		}
	}

	got := GetEntitiesWith1[*testPositionComponent](em)
	if len(got) != len(withPos) {
		t.Fatalf("Expected %d entities, got %d", len(withPos), len(got))
	}
	for i := range got {
		if got[i] != withPos[i] {
			t.Errorf("index %d: expected %d, got %d", i, withPos[i], got[i])
		}
	}
}
