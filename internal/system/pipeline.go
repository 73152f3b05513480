// internal/system/pipeline.go
package system

// Pipeline — все системы мира в порядке выполнения тика.
type Pipeline struct {
	Env         *Env
	Waves       *WaveSystem
	Buffs       *BuffIndex
	Combat      *CombatSystem
	Chain       *ChainSystem
	Projectiles *ProjectileSystem
	Orbiters    *OrbiterSystem
	Exploders   *ExploderSystem
	Auras       *AuraApplier
	Status      *StatusEffectSystem
	Environment *EnvironmentalDamageSystem
	Movement    *MovementSystem
	Effects     *VisualEffectSystem
	Economy     *Economy
	State       *StateSystem
}

func NewPipeline(env *Env) *Pipeline {
	p := &Pipeline{
		Env:         env,
		Waves:       NewWaveSystem(env),
		Buffs:       env.Buffs,
		Chain:       NewChainSystem(env),
		Projectiles: NewProjectileSystem(env),
		Orbiters:    NewOrbiterSystem(env),
		Exploders:   NewExploderSystem(env),
		Status:      NewStatusEffectSystem(env),
		Effects:     NewVisualEffectSystem(env),
		Economy:     env.Economy,
		State:       NewStateSystem(env.Events),
	}
	p.Combat = NewCombatSystem(env, p.Status, p.Projectiles, p.Exploders, p.Chain)
	p.Chain.Bind(p.Combat)
	p.Projectiles.Bind(p.Combat)
	p.Auras = NewAuraApplier(env, p.Status)
	p.Environment = NewEnvironmentalDamageSystem(env, p.Status)
	p.Movement = NewMovementSystem(env, p.Status, p.Environment)
	return p
}

// Step продвигает часы на dt и прогоняет системы в фиксированном порядке.
func (p *Pipeline) Step(deltaTime float64) {
	ecs := p.Env.ECS
	ecs.Advance(deltaTime)

	p.Waves.Update(deltaTime)
	p.Buffs.Update(deltaTime)
	p.Combat.Update(deltaTime)
	p.Projectiles.Update(deltaTime)
	p.Orbiters.Update(deltaTime)
	p.Exploders.Update(deltaTime)
	p.Auras.Update(deltaTime)
	p.Movement.Update(deltaTime)
	p.Effects.Update(deltaTime)
	p.Economy.Update(deltaTime)

	ecs.Sweep()
}
