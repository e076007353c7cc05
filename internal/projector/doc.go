// Package projector maps directions on the sphere to positions on a flat
// projection plane and to pixel indices of a discretized image of that
// plane, and back.
//
// Every projection works in its own local frame in which the projection
// center lies on the +X axis. Unless an operation is called in direct
// mode, vectors are first rotated from the map frame into that local frame
// by the projector's Rotator (and back again on the inverse path).
//
// Points outside a projection's domain are never errors: they come back as
// NaN coordinates or as invalid Index values. Errors are reserved for
// misuse, such as converting to image indices on a projector that has no
// plane discretization.
package projector
