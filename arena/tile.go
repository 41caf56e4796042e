package arena

// TileType identifies what occupies a grid cell. Foreground cells hold
// gameplay obstacles (walls, destructible props, bombs) or Empty. Background
// cells hold decorative floor or Empty.
type TileType uint8

const (
	Empty TileType = iota
	Floor
	Wall
	Tombstone
	Barrel
	Cauldron
	Bottle
	CandleStand
	BarStool
	Chair
	Crate
	BombTile
	NTileTypes
)

// MeshId and MaterialId are opaque handles the rendering layer maps to its
// own resources.
type MeshId uint8
type MaterialId uint8

const (
	MeshNone MeshId = iota
	MeshWall
	MeshFloor
	MeshTombstone
	MeshBarrel
	MeshCauldron
	MeshBottle
	MeshCandleStand
	MeshBarStool
	MeshChair
	MeshCrate
	MeshBomb
	MeshPlayer
	MeshPowerup
	NMeshes
)

const (
	MaterialNone MaterialId = iota
	MaterialSandstone
	MaterialGreystone
	MaterialBarrel
	MaterialCauldron
	MaterialBottle
	MaterialCandleStand
	MaterialBarStool
	MaterialChair
	MaterialCrate
	MaterialPlayer1
	MaterialPlayer2
	MaterialPowerupSpeed
	MaterialPowerupRadius
	MaterialPowerupBomb
	NMaterials
)

// TileInfo is the registry entry for a tile type. Colliders are in
// cell-local coordinates, inside [0,1]x[0,1]. A tile without colliders is
// walkable.
type TileInfo struct {
	Symbol       rune
	Name         string
	Mesh         MeshId
	Material     MaterialId
	Colliders    []Rect
	Destructible bool
}

// RandomSymbol is only valid in level files. It is replaced by a random
// destructible prop (or nothing) when the grid is built.
const RandomSymbol = 'X'

var fullCell = []Rect{NewRect(0, 0, 1, 1)}

// tiles is the tile registry, indexed by TileType. It is built once and never
// modified.
var tiles = [NTileTypes]TileInfo{
	Empty: {Symbol: ' ', Name: "empty"},
	Floor: {Symbol: '_', Name: "floor", Mesh: MeshFloor,
		Material: MaterialGreystone},
	Wall: {Symbol: '#', Name: "wall", Mesh: MeshWall,
		Material: MaterialSandstone, Colliders: fullCell},
	Tombstone: {Symbol: 'T', Name: "tombstone", Mesh: MeshTombstone,
		Material:  MaterialGreystone,
		Colliders: []Rect{NewRect(0.2, 0.2, 0.8, 0.8)}, Destructible: true},
	Barrel: {Symbol: 'O', Name: "barrel", Mesh: MeshBarrel,
		Material: MaterialBarrel, Colliders: fullCell, Destructible: true},
	Cauldron: {Symbol: 'C', Name: "cauldron", Mesh: MeshCauldron,
		Material:  MaterialCauldron,
		Colliders: []Rect{NewRect(0.2, 0.2, 0.8, 0.8)}, Destructible: true},
	Bottle: {Symbol: 'L', Name: "bottle", Mesh: MeshBottle,
		Material:  MaterialBottle,
		Colliders: []Rect{NewRect(0.1, 0.1, 0.9, 0.9)}, Destructible: true},
	CandleStand: {Symbol: 'S', Name: "candle stand", Mesh: MeshCandleStand,
		Material:  MaterialCandleStand,
		Colliders: []Rect{NewRect(0.3, 0.3, 0.7, 0.7)}, Destructible: true},
	BarStool: {Symbol: 'V', Name: "bar stool", Mesh: MeshBarStool,
		Material:  MaterialBarStool,
		Colliders: []Rect{NewRect(0.2, 0.2, 0.8, 0.8)}, Destructible: true},
	Chair: {Symbol: 'h', Name: "chair", Mesh: MeshChair,
		Material: MaterialChair, Colliders: fullCell, Destructible: true},
	// The crate is L-shaped: a bar along the top of the cell and a bar down
	// its left side.
	Crate: {Symbol: 'K', Name: "crate", Mesh: MeshCrate,
		Material: MaterialCrate, Colliders: []Rect{
			NewRect(0, 0, 1, 0.35),
			NewRect(0, 0.35, 0.35, 1),
		}, Destructible: true},
	BombTile: {Symbol: 'B', Name: "bomb", Mesh: MeshBomb,
		Material:  MaterialCauldron,
		Colliders: []Rect{NewRect(0.3, 0.3, 0.7, 0.7)}},
}

var tileBySymbol = func() map[rune]TileType {
	m := make(map[rune]TileType, NTileTypes)
	for t := range NTileTypes {
		m[tiles[t].Symbol] = t
	}
	return m
}()

func (t TileType) Info() *TileInfo {
	return &tiles[t]
}

func (t TileType) Symbol() rune {
	return tiles[t].Symbol
}

func (t TileType) String() string {
	return tiles[t].Name
}

// TileFromSymbol looks up the tile type for a level-file symbol.
func TileFromSymbol(r rune) (TileType, bool) {
	t, ok := tileBySymbol[r]
	return t, ok
}
