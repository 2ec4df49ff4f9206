// Package clustering groups employees by attendance behaviour.
//
// Weekday and weekend shifts are clustered separately. For each employee the
// feature vector is (mean hours, distinct days worked, sample standard
// deviation of hours); features are standardized across the partition and
// fed to a k-means with k-means++ seeding, a PCG source seeded from the
// configured seed and several restarts. The restart with the lowest inertia
// wins.
//
// Cluster ids are dense and canonical: walking employees in key order, the
// first employee is in cluster 0, the next employee of a new cluster is in
// cluster 1, and so on. Identical input and seed always give identical
// assignments.
//
// Each cluster is described from the mean raw features of its members:
//
//	Group characterized by long shifts, near-daily attendance, consistent schedule.
package clustering
