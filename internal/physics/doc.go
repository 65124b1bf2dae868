// Package physics provides the rolling-circle motion model.
//
// A circle of radius a rolls without slipping along the x-axis. After it has
// turned through angle t its centre sits at (a·t, a) and the rim point that
// started at the origin sits at
//
//	x = a·(t − sin t)
//	y = a·(1 − cos t)
//
// which is the cycloid, also the brachistochrone between its endpoints.
//
// [Position] and [Center] are total functions over the reals. Radius
// validation happens before a [Cycloid] is built, not here.
package physics
