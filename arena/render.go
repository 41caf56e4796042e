package arena

import "github.com/go-gl/mathgl/mgl64"

// Instance is one thing to draw: a mesh with a material, placed at Pos and
// rotated by Rotation degrees around the vertical axis.
type Instance struct {
	Mesh     MeshId
	Material MaterialId
	Pos      mgl64.Vec3
	Rotation float64
}

// Instances appends everything currently visible in the World to dst, in
// this order: background tiles, foreground tiles, powerups, players. Tiles
// are placed at their cell's corner, players and powerups at their own
// position.
func (w *World) Instances(dst []Instance) []Instance {
	size := w.Grid.Size()
	var pt Pt
	for pt.Y = 0; pt.Y < size.Y; pt.Y++ {
		for pt.X = 0; pt.X < size.X; pt.X++ {
			info := w.Grid.Background(pt).Info()
			if info.Mesh == MeshNone {
				continue
			}
			dst = append(dst, Instance{
				Mesh:     info.Mesh,
				Material: info.Material,
				Pos:      mgl64.Vec3{float64(pt.X), -1, float64(pt.Y)},
			})
		}
	}
	for pt.Y = 0; pt.Y < size.Y; pt.Y++ {
		for pt.X = 0; pt.X < size.X; pt.X++ {
			info := w.Grid.Tile(pt).Info()
			if info.Mesh == MeshNone {
				continue
			}
			dst = append(dst, Instance{
				Mesh:     info.Mesh,
				Material: info.Material,
				Pos:      mgl64.Vec3{float64(pt.X), 0, float64(pt.Y)},
			})
		}
	}
	for _, pu := range w.Powerups.All() {
		dst = append(dst, Instance{
			Mesh:     MeshPowerup,
			Material: pu.Kind.Material(),
			Pos:      pu.Pos,
		})
	}
	for i := range w.Players {
		p := &w.Players[i]
		material := MaterialPlayer1
		if i == 1 {
			material = MaterialPlayer2
		}
		dst = append(dst, Instance{
			Mesh:     MeshPlayer,
			Material: material,
			Pos:      p.Pos,
			Rotation: p.Angle,
		})
	}
	return dst
}
