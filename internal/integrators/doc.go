// Package integrators provides the gravitational force kernel.
//
// [SemiImplicitEuler] advances a set of bodies under pairwise inverse-square
// attraction. Each step first computes every new velocity from the
// positions at the start of the step (simultaneous update), then moves each
// body along its new velocity:
//
//	v_i' = v_i + dt * Σ_{j≠i} G m_j (p_j - p_i) / |p_j - p_i|³
//	p_i' = p_i + dt * v_i'
//
// All pairs are evaluated in both directions. Pairs closer than
// [CoincidenceEpsilon] in squared distance contribute nothing.
package integrators
