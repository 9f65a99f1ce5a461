package solver

// PositionSolver runs the non-linear Gauss-Seidel position correction pass:
// joints then contacts, repeated params.NumPositionIterations times,
// operating directly on body transforms.
type PositionSolver struct{}

// Solve iterates store's joint and contact position constraints.
func (PositionSolver) Solve(params *IntegrationParameters, store *ConstraintStore) {
	for iter := 0; iter < params.NumPositionIterations; iter++ {
		for i := range store.JointPosition {
			store.JointPosition[i].Solve(params)
		}
		for i := range store.ContactPosition {
			store.ContactPosition[i].Solve(params)
		}
	}
}
