package systems

import (
	"sort"

	"github.com/decker502/duckhunt/pkg/components"
	"github.com/decker502/duckhunt/pkg/ecs"
	"github.com/decker502/duckhunt/pkg/utils"
)

// SpatialQuery 对存活目标做范围查询
// 已进入移除流程（Removed）的目标不会出现在结果中
type SpatialQuery struct {
	entityManager *ecs.EntityManager
}

// NewSpatialQuery 创建范围查询
func NewSpatialQuery(em *ecs.EntityManager) *SpatialQuery {
	return &SpatialQuery{entityManager: em}
}

// LiveTargets 返回所有存活目标（按实体 ID 升序）
func (q *SpatialQuery) LiveTargets() []ecs.EntityID {
	entities := ecs.GetEntitiesWith2[*components.TargetComponent, *components.TransformComponent](q.entityManager)
	live := make([]ecs.EntityID, 0, len(entities))
	for _, id := range entities {
		target, _ := ecs.GetComponent[*components.TargetComponent](q.entityManager, id)
		if target.Removed || q.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		live = append(live, id)
	}
	return live
}

// TargetsInRadius 返回与以 center 为球心、radius 为半径的球相交的存活目标
//
// 结果是调用时刻的快照，按距离由近到远排序（距离相同按 ID）。
// 调用方在遍历过程中移除目标不会影响快照本身。
func (q *SpatialQuery) TargetsInRadius(center utils.Vec3, radius float64) []ecs.EntityID {
	type candidate struct {
		id   ecs.EntityID
		dist float64
	}

	found := make([]candidate, 0)
	for _, id := range q.LiveTargets() {
		target, _ := ecs.GetComponent[*components.TargetComponent](q.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](q.entityManager, id)

		d := transform.Position.Dist(center)
		if d <= radius+target.Radius {
			found = append(found, candidate{id: id, dist: d})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].id < found[j].id
	})

	ids := make([]ecs.EntityID, len(found))
	for i, c := range found {
		ids[i] = c.id
	}
	return ids
}
