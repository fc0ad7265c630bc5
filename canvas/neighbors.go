package canvas

const clusterSize = 3

// RecomputeCluster rebuilds the neighbor-derived fields of every occupied
// cell in the 3x3 block centered on center. One edit can change the sprite of
// all eight surrounding cells, so the whole block is recomputed from scratch.
func (c *Canvas) RecomputeCluster(center Cell) {
	half := clusterSize / 2
	for col := 0; col < clusterSize; col++ {
		for row := 0; row < clusterSize; row++ {
			cell := center.Add(col-half, row-half)
			t, ok := c.tiles[cell]
			if !ok {
				continue
			}
			t.TerrainNeighbors = t.TerrainNeighbors[:0]
			t.WaterTop = false

			for _, dir := range Directions {
				n, ok := c.tiles[cell.Add(dir.DX, dir.DY)]
				if !ok {
					continue
				}
				if dir == TopDirection && n.HasWater && t.HasWater {
					t.WaterTop = true
				}
				if n.HasTerrain {
					t.TerrainNeighbors = append(t.TerrainNeighbors, dir.Code)
				}
			}
		}
	}
}
