package leveler

// Package leveler assigns leveled start and finish times to tasks under
// crew-capacity constraints, never earlier than the unconstrained baseline.
// Two modes exist: exclusive (one crew per exact code, implicit capacity 1)
// and pooled (configurable concurrent capacity per crew category).
