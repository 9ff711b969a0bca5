package facility

// Kinematics holds the derived rotational quantities of the core at the
// current RPM. All three are pure functions of radius and RPM.
type Kinematics struct {
	AngularVelocity         float64 // rad/s
	TangentialVelocity      float64 // m/s
	CentrifugalAcceleration float64 // m/s^2
}

// TickRecord is the per-tick snapshot handed to metrics, observers and the
// event generator. Fields are numerically consistent at the tick boundary:
// the kinematic values are derived from the RPM in the same record.
type TickRecord struct {
	Step                    int     `json:"step"`
	Elapsed                 float64 `json:"elapsed_s"`
	RPM                     float64 `json:"rpm"`
	AngularVelocity         float64 `json:"angular_velocity"`
	TangentialVelocity      float64 `json:"tangential_velocity"`
	CentrifugalAcceleration float64 `json:"centrifugal_acceleration"`
	Stable                  bool    `json:"stable"`
	Pressure                float64 `json:"pressure_pa"`
}
