package game

// GameState 游戏控制器状态机的状态
// 每个控制器实例任意时刻恰好处于一个状态，状态单调推进，
// 仅 StateTick 自循环
type GameState int

const (
	// StateInvalid 初始状态（仅构造时），Start() 后立即进入 StateInit
	StateInvalid GameState = iota

	// StateInit 初始化：隐藏嘴部跟踪代理、绑定代理位置到嘴部中心、
	// 发起下落物节点池的异步查找
	StateInit

	// StateWaitPool 等待异步节点池解析完成
	StateWaitPool

	// StateTick 主循环：每个周期随机尝试开始一次下落，
	// 并扫描可吞吃的下落物（永不退出）
	StateTick

	// StateCatch 保留状态，当前逻辑不可达（no-op）
	StateCatch
)

// String 返回状态的字符串表示（用于日志）
func (s GameState) String() string {
	switch s {
	case StateInvalid:
		return "Invalid"
	case StateInit:
		return "Init"
	case StateWaitPool:
		return "WaitPool"
	case StateTick:
		return "Tick"
	case StateCatch:
		return "Catch"
	default:
		return "Unknown"
	}
}
