// Package wpt implements the streaming Wavelet Packet Transform: a full
// binary tree of decimated decompositions over a power-of-two window,
// where both the approximation and detail branch are recursively split at
// every level (unlike FWT, which only splits the approximation branch).
package wpt
