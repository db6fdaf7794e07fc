// Package smo implements the Sequential Minimal Optimization dual solver
// for binary SVMs: working-set selection, the paired update step,
// shrinking, and the optional ν-formulation. It is a direct, generics-based
// port of the classical libsvm/linfa SMO algorithm.
package smo

import (
	"math"

	"github.com/go-ml-lab/svmkit/floatkind"
	"github.com/go-ml-lab/svmkit/kernel"
)

// extremum tracks a running max/argmax pair; idx is -1 until something has
// been seen.
type extremum[A floatkind.Float] struct {
	value A
	idx   int
}

// SolverState is the mutable state of one SMO run. It is constructed with
// New, driven to completion with Solve, and then discarded — it has no
// use once Solve returns.
type SolverState[A floatkind.Float] struct {
	gradient      []A
	gradientFixed []A
	alpha         []Alpha[A]
	p             []A
	targets       []bool
	// targetsOriginal never changes: it mirrors the targets argument
	// passed to New, in the caller's original sample order. It is needed
	// at the very end of Solve to reconstruct the primal weight vector
	// against the kernel's (likewise never-permuted) raw dataset, once
	// alpha has already been unpermuted back to original order.
	targetsOriginal []bool
	bounds          []A
	activeSet       []int
	nactive         int
	unshrink        bool
	nuConstraint    bool
	r               A

	kernel kernel.Permutable[A]
	params Params[A]
}

// New constructs a solver state for n coordinates from an initial alpha
// (typically all zero), the QP's linear term p, the ±1 target vector, a
// kernel collaborator, per-coordinate upper bounds, solver parameters, and
// the ν-formulation flag.
func New[A floatkind.Float](alpha0, p []A, targets []bool, ker kernel.Permutable[A], bounds []A, params Params[A], nuConstraint bool) *SolverState[A] {
	n := len(alpha0)

	alpha := make([]Alpha[A], n)
	for i := 0; i < n; i++ {
		alpha[i] = newAlpha(alpha0[i], bounds[i])
	}

	activeSet := make([]int, n)
	for i := range activeSet {
		activeSet[i] = i
	}

	gradient := make([]A, n)
	copy(gradient, p)
	gradientFixed := make([]A, n)

	for i := 0; i < n; i++ {
		if alpha[i].ReachedLower() {
			continue
		}
		dist := ker.Distances(i, n)
		ai := alpha[i].Value
		for j := 0; j < n; j++ {
			gradient[j] += ai * dist[j]
		}
		if alpha[i].ReachedUpper() {
			bi := bounds[i]
			for j := 0; j < n; j++ {
				gradientFixed[j] += bi * dist[j]
			}
		}
	}

	return &SolverState[A]{
		gradient:        gradient,
		gradientFixed:   gradientFixed,
		alpha:           alpha,
		p:               append([]A(nil), p...),
		targets:         append([]bool(nil), targets...),
		targetsOriginal: append([]bool(nil), targets...),
		bounds:          append([]A(nil), bounds...),
		activeSet:       activeSet,
		nactive:         n,
		nuConstraint:    nuConstraint,
		kernel:          ker,
		params:          params,
	}
}

// NActive returns the size of the current active prefix.
func (s *SolverState[A]) NActive() int { return s.nactive }

// NTotal returns the total number of coordinates.
func (s *SolverState[A]) NTotal() int { return len(s.alpha) }

func (s *SolverState[A]) target(i int) A {
	if s.targets[i] {
		return floatkind.FromInt[A](1)
	}
	return floatkind.FromInt[A](-1)
}

func (s *SolverState[A]) targetOriginal(i int) A {
	if s.targetsOriginal[i] {
		return floatkind.FromInt[A](1)
	}
	return floatkind.FromInt[A](-1)
}

// bound is deliberately not permuted by swap: bounds stays anchored to the
// original coordinate order, so bound(i) is the bound of original
// coordinate i, not of the coordinate currently at position i. It is used
// only inside update, which clips against bound(i) and bound(j) and
// rebuilds both Alpha values with them, replacing the UpperBound each
// Alpha carried through swap. The two agree whenever every coordinate has
// the same bound. This matches the original solver exactly.
func (s *SolverState[A]) bound(i int) A { return s.bounds[i] }

// swap permutes two coordinate positions. Every parallel array the solver
// owns moves together, and the kernel is told to permute its own row/column
// order to match; bounds is the one exception (see bound's comment).
func (s *SolverState[A]) swap(i, j int) {
	if i == j {
		return
	}
	s.gradient[i], s.gradient[j] = s.gradient[j], s.gradient[i]
	s.gradientFixed[i], s.gradientFixed[j] = s.gradientFixed[j], s.gradientFixed[i]
	s.alpha[i], s.alpha[j] = s.alpha[j], s.alpha[i]
	s.p[i], s.p[j] = s.p[j], s.p[i]
	s.activeSet[i], s.activeSet[j] = s.activeSet[j], s.activeSet[i]
	s.kernel.SwapIndices(i, j)
	s.targets[i], s.targets[j] = s.targets[j], s.targets[i]
}

// reconstructGradient restores gradient[j] for all shrunk coordinates
// j in [nactive, n). It leaves nactive unchanged; callers widen the active
// set back to the full range afterwards. It picks whichever of two
// equivalent accumulation orders touches fewer kernel entries; both must
// produce identical results.
func (s *SolverState[A]) reconstructGradient() {
	n := s.NTotal()
	if s.nactive == n {
		return
	}

	for j := s.nactive; j < n; j++ {
		s.gradient[j] = s.gradientFixed[j] + s.p[j]
	}

	nfree := 0
	for i := 0; i < s.nactive; i++ {
		if s.alpha[i].FreeFloating() {
			nfree++
		}
	}

	if nfree*n > 2*s.nactive*(n-s.nactive) {
		for i := s.nactive; i < n; i++ {
			dist := s.kernel.Distances(i, s.nactive)
			for j := 0; j < s.nactive; j++ {
				if s.alpha[j].FreeFloating() {
					s.gradient[i] += s.alpha[j].Value * dist[j]
				}
			}
		}
	} else {
		for i := 0; i < s.nactive; i++ {
			if !s.alpha[i].FreeFloating() {
				continue
			}
			dist := s.kernel.Distances(i, n)
			ai := s.alpha[i].Value
			for j := s.nactive; j < n; j++ {
				s.gradient[j] += ai * dist[j]
			}
		}
	}
}

// update performs one SMO step on the working pair (i, j).
func (s *SolverState[A]) update(i, j int) {
	distI := s.kernel.Distances(i, s.nactive)
	distJ := s.kernel.Distances(j, s.nactive)

	boundI := s.bound(i)
	boundJ := s.bound(j)

	oldAlphaI := s.alpha[i].Value
	oldAlphaJ := s.alpha[j].Value

	tiny := floatkind.FromFloat64[A](1e-10)
	two := floatkind.FromFloat64[A](2.0)

	if s.targets[i] != s.targets[j] {
		quadCoef := s.kernel.SelfDistance(i) + s.kernel.SelfDistance(j) + two*distI[j]
		if quadCoef <= 0 {
			quadCoef = tiny
		}

		delta := -(s.gradient[i] + s.gradient[j]) / quadCoef
		diff := s.alpha[i].Value - s.alpha[j].Value

		s.alpha[i].Value += delta
		s.alpha[j].Value += delta

		if diff > 0 {
			if s.alpha[j].Value < 0 {
				s.alpha[j].Value = 0
				s.alpha[i].Value = diff
			}
		} else if s.alpha[i].Value < 0 {
			s.alpha[i].Value = 0
			s.alpha[j].Value = -diff
		}

		if diff > boundI-boundJ {
			if s.alpha[i].Value > boundI {
				s.alpha[i].Value = boundI
				s.alpha[j].Value = boundI - diff
			}
		} else if s.alpha[j].Value > boundJ {
			s.alpha[j].Value = boundJ
			s.alpha[i].Value = boundJ + diff
		}
	} else {
		quadCoef := s.kernel.SelfDistance(i) + s.kernel.SelfDistance(j) - two*distI[j]
		if quadCoef <= 0 {
			quadCoef = tiny
		}

		delta := (s.gradient[i] - s.gradient[j]) / quadCoef
		sum := s.alpha[i].Value + s.alpha[j].Value

		s.alpha[i].Value -= delta
		s.alpha[j].Value += delta

		// These two clipping blocks independently test sum against
		// bound_i and bound_j in sequence; with bound_i != bound_j the
		// second can in principle revisit what the first just set.
		// Preserved exactly as specified rather than restructured.
		if sum > boundI {
			if s.alpha[i].Value > boundI {
				s.alpha[i].Value = boundI
				s.alpha[j].Value = sum - boundI
			}
		} else if s.alpha[j].Value < 0 {
			s.alpha[j].Value = 0
			s.alpha[i].Value = sum
		}
		if sum > boundJ {
			if s.alpha[j].Value > boundJ {
				s.alpha[j].Value = boundJ
				s.alpha[i].Value = sum - boundJ
			}
		} else if s.alpha[i].Value < 0 {
			s.alpha[i].Value = 0
			s.alpha[j].Value = sum
		}
	}

	deltaAlphaI := s.alpha[i].Value - oldAlphaI
	deltaAlphaJ := s.alpha[j].Value - oldAlphaJ

	for k := 0; k < s.nactive; k++ {
		s.gradient[k] += distI[k]*deltaAlphaI + distJ[k]*deltaAlphaJ
	}

	ui := s.alpha[i].ReachedUpper()
	uj := s.alpha[j].ReachedUpper()

	s.alpha[i] = newAlpha(s.alpha[i].Value, s.bound(i))
	s.alpha[j] = newAlpha(s.alpha[j].Value, s.bound(j))

	// Deliberate asymmetry: i's gradient_fixed correction runs over every
	// coordinate, j's only over the active ones. This mirrors the
	// original solver and must not be "fixed" into symmetry.
	if ui != s.alpha[i].ReachedUpper() {
		full := s.kernel.Distances(i, s.NTotal())
		bi := s.bound(i)
		if ui {
			for k := 0; k < s.NTotal(); k++ {
				s.gradientFixed[k] -= bi * full[k]
			}
		} else {
			for k := 0; k < s.NTotal(); k++ {
				s.gradientFixed[k] += bi * full[k]
			}
		}
	}

	if uj != s.alpha[j].ReachedUpper() {
		full := s.kernel.Distances(j, s.NTotal())
		bj := s.bound(j)
		if uj {
			for k := 0; k < s.nactive; k++ {
				s.gradientFixed[k] -= bj * full[k]
			}
		} else {
			for k := 0; k < s.nactive; k++ {
				s.gradientFixed[k] += bj * full[k]
			}
		}
	}
}

// maxViolatingPair returns (gmax1, gmax2): gmax1 = max{-y_i grad_i : i in
// I_up}, gmax2 = max{y_i grad_i : i in I_low}.
func (s *SolverState[A]) maxViolatingPair() (gmax1, gmax2 extremum[A]) {
	gmax1 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}
	gmax2 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}

	for i := 0; i < s.nactive; i++ {
		g := s.gradient[i]
		if s.targets[i] {
			if !s.alpha[i].ReachedUpper() && -g >= gmax1.value {
				gmax1 = extremum[A]{value: -g, idx: i}
			}
			if !s.alpha[i].ReachedLower() && g >= gmax2.value {
				gmax2 = extremum[A]{value: g, idx: i}
			}
		} else {
			if !s.alpha[i].ReachedUpper() && -g >= gmax2.value {
				gmax2 = extremum[A]{value: -g, idx: i}
			}
			if !s.alpha[i].ReachedLower() && g >= gmax1.value {
				gmax1 = extremum[A]{value: g, idx: i}
			}
		}
	}
	return
}

// maxViolatingPairNu returns the four ν-formulation extrema, partitioned by
// sign of y and box side: gmax1 (y=+, up), gmax2 (y=-, low), gmax3 (y=+,
// low), gmax4 (y=-, up).
func (s *SolverState[A]) maxViolatingPairNu() (gmax1, gmax2, gmax3, gmax4 extremum[A]) {
	gmax1 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}
	gmax2 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}
	gmax3 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}
	gmax4 = extremum[A]{value: floatkind.Inf[A](-1), idx: -1}

	for i := 0; i < s.nactive; i++ {
		g := s.gradient[i]
		if s.targets[i] {
			if !s.alpha[i].ReachedUpper() && -g > gmax1.value {
				gmax1 = extremum[A]{value: -g, idx: i}
			}
			if !s.alpha[i].ReachedLower() && g > gmax3.value {
				gmax3 = extremum[A]{value: g, idx: i}
			}
		} else {
			if !s.alpha[i].ReachedUpper() && -g > gmax4.value {
				gmax4 = extremum[A]{value: -g, idx: i}
			}
			if !s.alpha[i].ReachedLower() && g > gmax2.value {
				gmax2 = extremum[A]{value: g, idx: i}
			}
		}
	}
	return
}

// shouldShrunk reports whether coordinate i, currently bound at upper or
// lower, has violated its KKT slack badly enough to drop from the active
// set. The y=false/lower branch tests on -gradient rather than gradient,
// mirroring the y=true/upper branch instead of its own sign-symmetric
// counterpart; preserved exactly as specified.
func (s *SolverState[A]) shouldShrunk(i int, gmax1, gmax2 A) bool {
	switch {
	case s.alpha[i].ReachedUpper():
		if s.targets[i] {
			return -s.gradient[i] > gmax1
		}
		return -s.gradient[i] > gmax2
	case s.alpha[i].ReachedLower():
		if s.targets[i] {
			return s.gradient[i] > gmax2
		}
		return -s.gradient[i] > gmax1
	default:
		return false
	}
}

func (s *SolverState[A]) shouldShrunkNu(i int, gmax1, gmax2, gmax3, gmax4 A) bool {
	switch {
	case s.alpha[i].ReachedUpper():
		if s.targets[i] {
			return -s.gradient[i] > gmax1
		}
		return -s.gradient[i] > gmax4
	case s.alpha[i].ReachedLower():
		if s.targets[i] {
			return s.gradient[i] > gmax2
		}
		return s.gradient[i] > gmax3
	default:
		return false
	}
}

// selectWorkingSet chooses the pair (i, j) for the next update step, or
// reports optimal if none violates the KKT conditions by more than eps.
func (s *SolverState[A]) selectWorkingSet() (i, j int, optimal bool) {
	if s.nuConstraint {
		return s.selectWorkingSetNu()
	}

	gmax, gmax2 := s.maxViolatingPair()
	objDiffMin := extremum[A]{value: floatkind.Inf[A](1), idx: -1}
	two := floatkind.FromFloat64[A](2.0)
	tiny := floatkind.FromFloat64[A](1e-10)

	if gmax.idx != -1 {
		iIdx := gmax.idx
		dist := s.kernel.Distances(iIdx, s.NTotal())

		for jIdx := 0; jIdx < s.nactive; jIdx++ {
			distIJ := dist[jIdx]
			if s.targets[jIdx] {
				if s.alpha[jIdx].ReachedLower() {
					continue
				}
				gradDiff := gmax.value + s.gradient[jIdx]
				if gradDiff <= 0 {
					continue
				}
				quadCoef := s.kernel.SelfDistance(iIdx) + s.kernel.SelfDistance(jIdx) - two*s.target(iIdx)*distIJ
				objDiff := objDiffFor(gradDiff, quadCoef, tiny)
				if objDiff <= objDiffMin.value {
					objDiffMin = extremum[A]{value: objDiff, idx: jIdx}
				}
			} else {
				if s.alpha[jIdx].ReachedUpper() {
					continue
				}
				gradDiff := gmax.value - s.gradient[jIdx]
				if gradDiff <= 0 {
					continue
				}
				quadCoef := s.kernel.SelfDistance(iIdx) + s.kernel.SelfDistance(jIdx) + two*s.target(iIdx)*distIJ
				objDiff := objDiffFor(gradDiff, quadCoef, tiny)
				if objDiff <= objDiffMin.value {
					objDiffMin = extremum[A]{value: objDiff, idx: jIdx}
				}
			}
		}
	}

	if gmax.value+gmax2.value < s.params.Eps || objDiffMin.idx == -1 {
		return 0, 0, true
	}
	return gmax.idx, objDiffMin.idx, false
}

func (s *SolverState[A]) selectWorkingSetNu() (int, int, bool) {
	gmax1, gmax2, gmax3, gmax4 := s.maxViolatingPairNu()
	objDiffMin := extremum[A]{value: floatkind.Inf[A](1), idx: -1}
	two := floatkind.FromFloat64[A](2.0)
	tiny := floatkind.FromFloat64[A](1e-10)

	var distPos, distNeg []A
	if gmax1.idx != -1 {
		distPos = s.kernel.Distances(gmax1.idx, s.NTotal())
	}
	if gmax2.idx != -1 {
		distNeg = s.kernel.Distances(gmax2.idx, s.NTotal())
	}

	for j := 0; j < s.nactive; j++ {
		if s.targets[j] {
			if s.alpha[j].ReachedLower() {
				continue
			}
			gradDiff := gmax1.value + s.gradient[j]
			if gradDiff <= 0 || distPos == nil {
				continue
			}
			i := gmax1.idx
			quadCoef := s.kernel.SelfDistance(i) + s.kernel.SelfDistance(j) - two*distPos[j]
			objDiff := objDiffFor(gradDiff, quadCoef, tiny)
			if objDiff <= objDiffMin.value {
				objDiffMin = extremum[A]{value: objDiff, idx: j}
			}
		} else {
			if s.alpha[j].ReachedUpper() {
				continue
			}
			gradDiff := gmax2.value - s.gradient[j]
			if gradDiff <= 0 || distNeg == nil {
				continue
			}
			i := gmax2.idx
			quadCoef := s.kernel.SelfDistance(i) + s.kernel.SelfDistance(j) - two*distNeg[j]
			objDiff := objDiffFor(gradDiff, quadCoef, tiny)
			if objDiff <= objDiffMin.value {
				objDiffMin = extremum[A]{value: objDiff, idx: j}
			}
		}
	}

	if floatkind.Max(gmax1.value+gmax3.value, gmax4.value+gmax2.value) < s.params.Eps || objDiffMin.idx == -1 {
		return 0, 0, true
	}

	outJ := objDiffMin.idx
	outI := gmax2.idx
	if s.targets[outJ] {
		outI = gmax1.idx
	}
	return outI, outJ, false
}

func objDiffFor[A floatkind.Float](gradDiff, quadCoef, tiny A) A {
	if quadCoef > 0 {
		return -(gradDiff * gradDiff) / quadCoef
	}
	return -(gradDiff * gradDiff) / tiny
}

// doShrinking drops coordinates that have settled at a bound from the
// active set, and unshrinks once (reconstructing the full gradient) the
// first time the KKT gap falls within 10*eps.
func (s *SolverState[A]) doShrinking() {
	if s.nuConstraint {
		s.doShrinkingNu()
		return
	}

	gmax1e, gmax2e := s.maxViolatingPair()
	gmax1, gmax2 := gmax1e.value, gmax2e.value
	ten := floatkind.FromFloat64[A](10.0)

	if !s.unshrink && gmax1+gmax2 <= s.params.Eps*ten {
		s.unshrink = true
		s.reconstructGradient()
		s.nactive = s.NTotal()
	}

	for i := 0; i < s.nactive; i++ {
		if !s.shouldShrunk(i, gmax1, gmax2) {
			continue
		}
		s.nactive--
		for s.nactive > i {
			if !s.shouldShrunk(s.nactive, gmax1, gmax2) {
				s.swap(i, s.nactive)
				break
			}
			s.nactive--
		}
	}
}

func (s *SolverState[A]) doShrinkingNu() {
	gmax1e, gmax2e, gmax3e, gmax4e := s.maxViolatingPairNu()
	gmax1, gmax2, gmax3, gmax4 := gmax1e.value, gmax2e.value, gmax3e.value, gmax4e.value
	ten := floatkind.FromFloat64[A](10.0)

	if !s.unshrink && floatkind.Max(gmax1+gmax2, gmax3+gmax4) <= s.params.Eps*ten {
		s.unshrink = true
		s.reconstructGradient()
		s.nactive = s.NTotal()
	}

	for i := 0; i < s.nactive; i++ {
		if !s.shouldShrunkNu(i, gmax1, gmax2, gmax3, gmax4) {
			continue
		}
		s.nactive--
		for s.nactive > i {
			if !s.shouldShrunkNu(s.nactive, gmax1, gmax2, gmax3, gmax4) {
				s.swap(i, s.nactive)
				break
			}
			s.nactive--
		}
	}
}

// calculateRho computes the bias term from the free (non-bound) active
// coordinates, or from the tightest bound-pair bracket if none are free.
func (s *SolverState[A]) calculateRho() A {
	if s.nuConstraint {
		return s.calculateRhoNu()
	}

	nfree := 0
	var sumFree A
	ub := floatkind.Inf[A](1)
	lb := floatkind.Inf[A](-1)

	for i := 0; i < s.nactive; i++ {
		yg := s.target(i) * s.gradient[i]

		switch {
		case s.alpha[i].ReachedUpper():
			if s.targets[i] {
				lb = floatkind.Max(lb, yg)
			} else {
				ub = floatkind.Min(ub, yg)
			}
		case s.alpha[i].ReachedLower():
			if s.targets[i] {
				ub = floatkind.Min(ub, yg)
			} else {
				lb = floatkind.Max(lb, yg)
			}
		default:
			nfree++
			sumFree += yg
		}
	}

	if nfree > 0 {
		return sumFree / floatkind.FromInt[A](nfree)
	}
	return (ub + lb) / floatkind.FromFloat64[A](2.0)
}

// calculateRhoNu computes the two class-local rho components and stashes
// their average in s.r. The ub2 bracket uses Max rather than Min, which
// looks backwards for an upper bracket; this is preserved exactly as
// specified rather than "corrected" — see SPEC_FULL.md / DESIGN.md.
func (s *SolverState[A]) calculateRhoNu() A {
	nfree1, nfree2 := 0, 0
	var sumFree1, sumFree2 A
	ub1, ub2 := floatkind.Inf[A](1), floatkind.Inf[A](1)
	lb1, lb2 := floatkind.Inf[A](-1), floatkind.Inf[A](-1)

	for i := 0; i < s.nactive; i++ {
		if s.targets[i] {
			switch {
			case s.alpha[i].ReachedUpper():
				lb1 = floatkind.Max(lb1, s.gradient[i])
			case s.alpha[i].ReachedLower():
				ub1 = floatkind.Min(ub1, s.gradient[i])
			default:
				nfree1++
				sumFree1 += s.gradient[i]
			}
		} else {
			switch {
			case s.alpha[i].ReachedUpper():
				lb2 = floatkind.Max(lb2, s.gradient[i])
			case s.alpha[i].ReachedLower():
				ub2 = floatkind.Max(ub2, s.gradient[i])
			default:
				nfree2++
				sumFree2 += s.gradient[i]
			}
		}
	}

	two := floatkind.FromFloat64[A](2.0)

	var r1 A
	if nfree1 > 0 {
		r1 = sumFree1 / floatkind.FromInt[A](nfree1)
	} else {
		r1 = (ub1 + lb1) / two
	}
	var r2 A
	if nfree2 > 0 {
		r2 = sumFree2 / floatkind.FromInt[A](nfree2)
	} else {
		r2 = (ub2 + lb2) / two
	}

	s.r = (r1 + r2) / two
	return (r1 - r2) / two
}

// Solve drives the solver to optimality or the iteration cap and returns
// the fitted model.
func (s *SolverState[A]) Solve() Svm[A] {
	n := s.NTotal()

	const tenMillion = 10_000_000
	var maxIter int
	if n > math.MaxInt/100 {
		maxIter = math.MaxInt
	} else {
		maxIter = 100 * n
	}
	if maxIter < tenMillion {
		maxIter = tenMillion
	}

	counterCap := n
	if counterCap > 1000 {
		counterCap = 1000
	}
	counter := counterCap + 1

	iter := 0
	for iter < maxIter {
		counter--
		if counter == 0 {
			counter = counterCap
			if s.params.Shrinking {
				s.doShrinking()
			}
		}

		i, j, optimal := s.selectWorkingSet()
		if optimal {
			s.reconstructGradient()
			s.nactive = n
			i2, j2, optimal2 := s.selectWorkingSet()
			if optimal2 {
				break
			}
			counter = 1
			i, j = i2, j2
		}

		iter++
		s.update(i, j)
	}

	if iter >= maxIter && s.nactive < n {
		s.reconstructGradient()
		s.nactive = n
	}

	rho := s.calculateRho()
	var r *A
	if s.nuConstraint {
		rv := s.r
		r = &rv
	}

	var v A
	for i := 0; i < n; i++ {
		v += s.alpha[i].Value * (s.gradient[i] + s.p[i])
	}
	obj := v / floatkind.FromFloat64[A](2.0)

	exitReason := ReachedThreshold
	if iter == maxIter {
		exitReason = ReachedIterations
	}

	alphaOut := make([]A, n)
	for i := 0; i < n; i++ {
		alphaOut[s.activeSet[i]] = s.alpha[i].Value
	}

	var linearDecision []A
	if s.kernel.Inner().IsLinear() {
		data := s.kernel.Inner().Dataset()
		_, cols := data.Dims()
		w := make([]A, cols)
		for i := 0; i < n; i++ {
			coef := s.targetOriginal(i) * alphaOut[i]
			for c := 0; c < cols; c++ {
				w[c] += coef * A(data.At(i, c))
			}
		}
		linearDecision = w
	}

	return Svm[A]{
		Alpha:          alphaOut,
		Rho:            rho,
		R:              r,
		ExitReason:     exitReason,
		Obj:            obj,
		Iterations:     iter,
		Kernel:         s.kernel,
		LinearDecision: linearDecision,
	}
}
