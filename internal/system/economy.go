// internal/system/economy.go
package system

import (
	"go-grid-defense/internal/event"
)

// Economy — золото и жизни. Начисления и штрафы за тик копятся в журнале
// и сводятся на последнем шаге тика. Покупка и продажа башен проходят сразу.
type Economy struct {
	env   *Env
	gold  int
	lives int

	pendingGold  int
	pendingLives int
	over         bool
}

func NewEconomy(env *Env, gold, lives int) *Economy {
	return &Economy{env: env, gold: max(0, gold), lives: max(0, lives)}
}

func (e *Economy) Gold() int  { return e.gold }
func (e *Economy) Lives() int { return e.lives }

// Over reports whether lives ran out.
func (e *Economy) Over() bool { return e.over }

// Grant queues a gold credit.
func (e *Economy) Grant(amount int) {
	if amount > 0 {
		e.pendingGold += amount
	}
}

// Penalize queues a gold debit.
func (e *Economy) Penalize(amount int) {
	if amount > 0 {
		e.pendingGold -= amount
	}
}

// LoseLives queues a lives decrement.
func (e *Economy) LoseLives(n int) {
	if n > 0 {
		e.pendingLives += n
	}
}

// CanAfford reports whether the settled balance covers cost.
func (e *Economy) CanAfford(cost int) bool { return e.gold >= cost }

// Spend debits immediately. Returns false without change if the balance is short.
func (e *Economy) Spend(cost int) bool {
	if cost < 0 || e.gold < cost {
		return false
	}
	if cost > 0 {
		e.gold -= cost
		e.env.Events.Emit(event.GoldChanged, event.AmountData{Value: e.gold, Delta: -cost})
	}
	return true
}

// Refund credits immediately.
func (e *Economy) Refund(amount int) {
	if amount <= 0 {
		return
	}
	e.gold += amount
	e.env.Events.Emit(event.GoldChanged, event.AmountData{Value: e.gold, Delta: amount})
}

// Update сводит журнал: золото не уходит ниже нуля, жизни только убывают.
func (e *Economy) Update(deltaTime float64) {
	if e.pendingGold != 0 {
		before := e.gold
		e.gold = max(0, e.gold+e.pendingGold)
		e.pendingGold = 0
		if e.gold != before {
			e.env.Events.Emit(event.GoldChanged, event.AmountData{Value: e.gold, Delta: e.gold - before})
		}
	}
	if e.pendingLives != 0 {
		before := e.lives
		e.lives = max(0, e.lives-e.pendingLives)
		e.pendingLives = 0
		e.env.Events.Emit(event.LivesChanged, event.AmountData{Value: e.lives, Delta: e.lives - before})
	}
	if e.lives == 0 && !e.over {
		e.over = true
		e.env.Logger.Info("game over", "time", e.env.Now())
		e.env.Events.Emit(event.GameOver, nil)
	}
}
