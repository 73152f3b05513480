// internal/state/state.go
package state

import "github.com/hajimehoshi/ebiten/v2"

// State — экран хоста: меню, матч или пауза поверх матча.
type State interface {
	Enter()
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
	Exit()
}

// StateMachine — стек экранов. Обновляется и рисуется только верхний;
// оверлей сам решает, рисовать ли то, что под ним.
type StateMachine struct {
	stack []State
}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Current returns the top state or nil.
func (sm *StateMachine) Current() State {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// SetState снимает весь стек и ставит новый экран.
func (sm *StateMachine) SetState(newState State) {
	for len(sm.stack) > 0 {
		sm.stack[len(sm.stack)-1].Exit()
		sm.stack = sm.stack[:len(sm.stack)-1]
	}
	if newState != nil {
		sm.stack = append(sm.stack, newState)
		newState.Enter()
	}
}

// Push кладёт оверлей поверх текущего экрана без его Exit.
func (sm *StateMachine) Push(s State) {
	sm.stack = append(sm.stack, s)
	s.Enter()
}

// Pop снимает верхний экран и заново входит в тот, что под ним.
func (sm *StateMachine) Pop() {
	if len(sm.stack) == 0 {
		return
	}
	sm.stack[len(sm.stack)-1].Exit()
	sm.stack = sm.stack[:len(sm.stack)-1]
	if cur := sm.Current(); cur != nil {
		cur.Enter()
	}
}

func (sm *StateMachine) Update(deltaTime float64) {
	if cur := sm.Current(); cur != nil {
		cur.Update(deltaTime)
	}
}

func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if cur := sm.Current(); cur != nil {
		cur.Draw(screen)
	}
}
