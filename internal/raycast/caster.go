package raycast

import "math"

// CastColumn casts the ray at angleOffset radians from the pose heading and
// returns the first wall hit. Distance is corrected to the view axis, so a
// straight corridor does not bow into a fisheye.
func CastColumn(grid Grid, pose Pose, angleOffset float64) RayResult {
	angle := pose.Angle + angleOffset
	return CastDirection(grid, pose, math.Cos(angle), math.Sin(angle), math.Cos(angleOffset))
}

// CastDirection marches a ray with unit direction (dirX, dirY) from the pose
// position. axisCos is the cosine between the ray and the view direction and
// converts the ray length into a perpendicular distance; pass 1 for raw ray
// length.
func CastDirection(grid Grid, pose Pose, dirX, dirY, axisCos float64) RayResult {
	mapX := int(math.Floor(pose.X))
	mapY := int(math.Floor(pose.Y))

	deltaX := noCrossing
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := noCrossing
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	// Distance along the ray to the first vertical and horizontal grid line
	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (pose.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - pose.X) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (pose.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - pose.Y) * deltaY
	}

	// Out-of-range cells are walls, so the loop ends at the grid border at
	// the latest. A pose outside the grid hits on the first step.
	side := SideX
	steps := 0
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideY
		}
		steps++
		if grid.IsWall(mapX, mapY) {
			break
		}
	}

	// Ray length to the crossed grid line, recovered from the cell index
	// rather than the accumulated side distance to avoid drift.
	var length float64
	if side == SideX {
		length = (float64(mapX) - pose.X + float64(1-stepX)/2) / dirX
	} else {
		length = (float64(mapY) - pose.Y + float64(1-stepY)/2) / dirY
	}
	if length < 0 {
		length = 0
	}

	distance := length * axisCos
	if distance < MinDistance {
		distance = MinDistance
	}

	var wallU float64
	if side == SideX {
		wallU = pose.Y + length*dirY
	} else {
		wallU = pose.X + length*dirX
	}
	wallU -= math.Floor(wallU)
	// Keep textures reading left to right on every face
	if (side == SideX && dirX > 0) || (side == SideY && dirY < 0) {
		wallU = 1 - wallU
	}
	if wallU >= 1 || wallU < 0 {
		wallU = 0
	}

	return RayResult{
		MapX:      mapX,
		MapY:      mapY,
		Side:      side,
		Distance:  distance,
		RayLength: length,
		WallU:     wallU,
		Steps:     steps,
	}
}
