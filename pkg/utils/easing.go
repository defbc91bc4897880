package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 难度曲线（生成数量、生成间隔）使用 SmoothStep，视觉序列（闪屏、色调淡出）使用 Ease* 系列。

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（闪屏淡出使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不做截断）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep 在 from 和 to 之间做平滑插值
//
// t 先被截断到 [0, 1]，再套用 3t² - 2t³ 曲线：两端斜率为 0，
// 前期和后期变化平缓，中段变化最快。
func SmoothStep(from, to, t float64) float64 {
	t = Clamp01(t)
	t = t * t * (3 - 2*t)
	return from*(1-t) + to*t
}
