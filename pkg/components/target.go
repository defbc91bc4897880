package components

// HitZone 命中部位
type HitZone int

const (
	// HitZoneNone 未命中任何部位
	HitZoneNone HitZone = iota
	// HitZoneBody 身体（×1）
	HitZoneBody
	// HitZoneHead 头部（×2）
	HitZoneHead
	// HitZoneBeak 鸭嘴（×3）
	HitZoneBeak
)

// String 返回部位名称（日志用）
func (z HitZone) String() string {
	switch z {
	case HitZoneBody:
		return "body"
	case HitZoneHead:
		return "head"
	case HitZoneBeak:
		return "beak"
	default:
		return "none"
	}
}

// TargetComponent 鸭子目标组件
//
// 生命周期：由 SpawnSystem 创建，被击杀或存活到期时通过 TargetSystem 移除。
// Removed 标志保证同一目标的移除流程（计分/扣命 + 活跃计数递减）只执行一次。
type TargetComponent struct {
	Radius     float64 // 身体半径（命中判定和范围查询使用）
	BasePoints int     // 基础分（命中倍率之前）

	// 头部与鸭嘴命中区域：相对身体中心的偏移和半径（与身体同一单位）
	HeadOffsetY float64
	HeadRadius  float64
	BeakOffsetX float64
	BeakOffsetY float64
	BeakRadius  float64

	SpeedFactor float64 // 速度倍率（Duck Dilation 减速为 0.6）
	Slowed      bool    // 是否已被减速
	Trail       bool    // 是否带拖尾（Duck Dilation L3 的外观标志）

	Removed bool // 是否已进入移除流程
}
