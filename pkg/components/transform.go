package components

import "github.com/decker502/duckhunt/pkg/utils"

// TransformComponent 目标在竞技场中的位置和速度
type TransformComponent struct {
	Position utils.Vec3
	Velocity utils.Vec3 // 单位/秒，实际位移还要乘以 TargetComponent.SpeedFactor
}
