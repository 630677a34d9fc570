// Package toast implements the transient notification widget shown by the
// terminal and GTK hosts. A toast moves through loading, success and exit
// phases on a fixed timeline and tells its host when it can be unmounted.
package toast
