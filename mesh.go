package xtree

import "github.com/arl/xtree/mesh"

// Mesh is the 3D render output. See package mesh for field documentation.
type Mesh = mesh.Mesh

// Contours is the 2D render output. See package mesh for field
// documentation.
type Contours = mesh.Contours
