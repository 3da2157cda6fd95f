package parameter

import "math"

// Orbit camera configuration
const (
	// CameraFOV is vertical field of view in degrees
	CameraFOV = 45.0
	// CameraDistance is initial distance from the orbit center
	CameraDistance = 9.0
	// CameraDistanceMin/Max clamp zoom
	CameraDistanceMin = 5.0
	CameraDistanceMax = 14.0
	// CameraNear rejects points closer than this along the view axis
	CameraNear = 0.1

	// CameraRotateStep is yaw/pitch change per key press in radians
	CameraRotateStep = 0.15
	// CameraZoomStep is distance change per key press
	CameraZoomStep = 0.75

	// CameraSpringFrequency and CameraSpringDamping drive orbit smoothing
	CameraSpringFrequency = 6.0
	CameraSpringDamping   = 1.0

	// CellAspect is terminal cell height over width
	CellAspect = 2.0

	// InteractionPlaneZ is the plane the pointer is unprojected onto
	InteractionPlaneZ = 0.0
)

// CameraPolarMin/Max clamp the polar angle measured from +Y
var (
	CameraPolarMin = math.Pi / 4
	CameraPolarMax = math.Pi / 1.8
)
