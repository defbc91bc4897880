package utils

import (
	"math/rand"
	"time"
)

// Random 可注入种子的随机数源
//
// 所有玩法随机（生成位置、道具概率、候选抽取）都通过同一个 Random，
// 固定种子即可复现一整局（headless 模拟和测试依赖这一点）。
// 非并发安全：只在单一更新线程中使用。
type Random struct {
	rng *rand.Rand
}

// NewRandom 创建随机数源，seed 为 0 时使用当前时间
func NewRandom(seed int64) *Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Float64 返回 [0.0, 1.0) 内的随机数
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Intn 返回 [0, n) 内的随机整数，n <= 0 时返回 0
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Range 返回 [lo, hi) 内的均匀随机数
func (r *Random) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.rng.Float64()
}

// Chance 以概率 p 返回 true
func (r *Random) Chance(p float64) bool {
	return r.rng.Float64() < p
}
