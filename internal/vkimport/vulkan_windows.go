//go:build windows

package vkimport

import (
	"syscall"
	"unsafe"
)

var (
	vulkanDLL = syscall.NewLazyDLL("vulkan-1.dll")

	procCreateInstance           = vulkanDLL.NewProc("vkCreateInstance")
	procDestroyInstance          = vulkanDLL.NewProc("vkDestroyInstance")
	procEnumeratePhysicalDevices = vulkanDLL.NewProc("vkEnumeratePhysicalDevices")
	procGetQueueFamilyProperties = vulkanDLL.NewProc("vkGetPhysicalDeviceQueueFamilyProperties")
	procGetMemoryProperties      = vulkanDLL.NewProc("vkGetPhysicalDeviceMemoryProperties")
	procCreateDevice             = vulkanDLL.NewProc("vkCreateDevice")
	procDestroyDevice            = vulkanDLL.NewProc("vkDestroyDevice")
	procGetDeviceQueue           = vulkanDLL.NewProc("vkGetDeviceQueue")

	procCreateImage                = vulkanDLL.NewProc("vkCreateImage")
	procDestroyImage               = vulkanDLL.NewProc("vkDestroyImage")
	procGetImageMemoryRequirements = vulkanDLL.NewProc("vkGetImageMemoryRequirements")
	procAllocateMemory             = vulkanDLL.NewProc("vkAllocateMemory")
	procFreeMemory                 = vulkanDLL.NewProc("vkFreeMemory")
	procBindImageMemory            = vulkanDLL.NewProc("vkBindImageMemory")

	procCreateBuffer                = vulkanDLL.NewProc("vkCreateBuffer")
	procDestroyBuffer               = vulkanDLL.NewProc("vkDestroyBuffer")
	procGetBufferMemoryRequirements = vulkanDLL.NewProc("vkGetBufferMemoryRequirements")
	procBindBufferMemory            = vulkanDLL.NewProc("vkBindBufferMemory")
	procMapMemory                   = vulkanDLL.NewProc("vkMapMemory")
	procUnmapMemory                 = vulkanDLL.NewProc("vkUnmapMemory")

	procCreateCommandPool      = vulkanDLL.NewProc("vkCreateCommandPool")
	procDestroyCommandPool     = vulkanDLL.NewProc("vkDestroyCommandPool")
	procAllocateCommandBuffers = vulkanDLL.NewProc("vkAllocateCommandBuffers")
	procBeginCommandBuffer     = vulkanDLL.NewProc("vkBeginCommandBuffer")
	procEndCommandBuffer       = vulkanDLL.NewProc("vkEndCommandBuffer")
	procCmdPipelineBarrier     = vulkanDLL.NewProc("vkCmdPipelineBarrier")
	procCmdCopyImageToBuffer   = vulkanDLL.NewProc("vkCmdCopyImageToBuffer")
	procQueueSubmit            = vulkanDLL.NewProc("vkQueueSubmit")
	procCreateFence            = vulkanDLL.NewProc("vkCreateFence")
	procDestroyFence           = vulkanDLL.NewProc("vkDestroyFence")
	procWaitForFences          = vulkanDLL.NewProc("vkWaitForFences")
	procResetFences            = vulkanDLL.NewProc("vkResetFences")
)

// VkStructureType values.
const (
	sTypeApplicationInfo            = 0
	sTypeInstanceCreateInfo         = 1
	sTypeDeviceQueueCreateInfo      = 2
	sTypeDeviceCreateInfo           = 3
	sTypeSubmitInfo                 = 4
	sTypeMemoryAllocateInfo         = 5
	sTypeFenceCreateInfo            = 8
	sTypeBufferCreateInfo           = 12
	sTypeImageCreateInfo            = 14
	sTypeCommandPoolCreateInfo      = 39
	sTypeCommandBufferAllocateInfo  = 40
	sTypeCommandBufferBeginInfo     = 42
	sTypeImageMemoryBarrier         = 45
	sTypeExternalMemoryImageCreate  = 1000072001
	sTypeImportMemoryWin32HandleKHR = 1000073000
)

const (
	vkSuccess = 0
	vkTimeout = 2

	apiVersion11 = 1<<22 | 1<<12 // VK_API_VERSION_1_1

	queueGraphicsBit = 0x1
	queueTransferBit = 0x4

	memoryPropertyHostVisible  = 0x2
	memoryPropertyHostCoherent = 0x4

	imageType2D      = 1
	sampleCount1     = 1
	tilingOptimal    = 0
	sharingExclusive = 0

	imageUsageTransferSrc = 0x1
	imageUsageSampled     = 0x4

	bufferUsageTransferDst = 0x2

	imageLayoutUndefined          = 0
	imageLayoutTransferSrcOptimal = 6

	accessTransferRead = 0x800

	stageTopOfPipe = 0x1
	stageTransfer  = 0x1000

	aspectColor = 0x1

	commandBufferLevelPrimary = 0

	commandBufferUsageOneTimeSubmit = 0x1

	maxMemoryTypes = 32
	maxMemoryHeaps = 16
)

var extExternalMemoryWin32 = []byte("VK_KHR_external_memory_win32\x00")

type applicationInfo struct {
	sType              uint32
	_                  uint32
	pNext              unsafe.Pointer
	pApplicationName   unsafe.Pointer
	applicationVersion uint32
	_                  uint32
	pEngineName        unsafe.Pointer
	engineVersion      uint32
	apiVersion         uint32
}

type instanceCreateInfo struct {
	sType                   uint32
	_                       uint32
	pNext                   unsafe.Pointer
	flags                   uint32
	_                       uint32
	pApplicationInfo        unsafe.Pointer
	enabledLayerCount       uint32
	_                       uint32
	ppEnabledLayerNames     unsafe.Pointer
	enabledExtensionCount   uint32
	_                       uint32
	ppEnabledExtensionNames unsafe.Pointer
}

type deviceQueueCreateInfo struct {
	sType            uint32
	_                uint32
	pNext            unsafe.Pointer
	flags            uint32
	queueFamilyIndex uint32
	queueCount       uint32
	_                uint32
	pQueuePriorities unsafe.Pointer
}

type deviceCreateInfo struct {
	sType                   uint32
	_                       uint32
	pNext                   unsafe.Pointer
	flags                   uint32
	queueCreateInfoCount    uint32
	pQueueCreateInfos       unsafe.Pointer
	enabledLayerCount       uint32
	_                       uint32
	ppEnabledLayerNames     unsafe.Pointer
	enabledExtensionCount   uint32
	_                       uint32
	ppEnabledExtensionNames unsafe.Pointer
	pEnabledFeatures        unsafe.Pointer
}

type queueFamilyProperties struct {
	queueFlags                  uint32
	queueCount                  uint32
	timestampValidBits          uint32
	minImageTransferGranularity [3]uint32
}

type memoryType struct {
	propertyFlags uint32
	heapIndex     uint32
}

type memoryHeap struct {
	size  uint64
	flags uint32
	_     uint32
}

type physicalDeviceMemoryProperties struct {
	memoryTypeCount uint32
	memoryTypes     [maxMemoryTypes]memoryType
	memoryHeapCount uint32
	_               uint32
	memoryHeaps     [maxMemoryHeaps]memoryHeap
}

type externalMemoryImageCreateInfo struct {
	sType       uint32
	_           uint32
	pNext       unsafe.Pointer
	handleTypes uint32
	_           uint32
}

type imageCreateInfo struct {
	sType                 uint32
	_                     uint32
	pNext                 unsafe.Pointer
	flags                 uint32
	imageType             uint32
	format                uint32
	extentWidth           uint32
	extentHeight          uint32
	extentDepth           uint32
	mipLevels             uint32
	arrayLayers           uint32
	samples               uint32
	tiling                uint32
	usage                 uint32
	sharingMode           uint32
	queueFamilyIndexCount uint32
	_                     uint32
	pQueueFamilyIndices   unsafe.Pointer
	initialLayout         uint32
	_                     uint32
}

type memoryRequirements struct {
	size           uint64
	alignment      uint64
	memoryTypeBits uint32
	_              uint32
}

type importMemoryWin32HandleInfoKHR struct {
	sType      uint32
	_          uint32
	pNext      unsafe.Pointer
	handleType uint32
	_          uint32
	handle     uintptr
	name       unsafe.Pointer
}

type memoryAllocateInfo struct {
	sType           uint32
	_               uint32
	pNext           unsafe.Pointer
	allocationSize  uint64
	memoryTypeIndex uint32
	_               uint32
}

type bufferCreateInfo struct {
	sType                 uint32
	_                     uint32
	pNext                 unsafe.Pointer
	flags                 uint32
	_                     uint32
	size                  uint64
	usage                 uint32
	sharingMode           uint32
	queueFamilyIndexCount uint32
	_                     uint32
	pQueueFamilyIndices   unsafe.Pointer
}

type commandPoolCreateInfo struct {
	sType            uint32
	_                uint32
	pNext            unsafe.Pointer
	flags            uint32
	queueFamilyIndex uint32
}

type commandBufferAllocateInfo struct {
	sType              uint32
	_                  uint32
	pNext              unsafe.Pointer
	commandPool        uint64
	level              uint32
	commandBufferCount uint32
}

type commandBufferBeginInfo struct {
	sType            uint32
	_                uint32
	pNext            unsafe.Pointer
	flags            uint32
	_                uint32
	pInheritanceInfo unsafe.Pointer
}

type imageSubresourceRange struct {
	aspectMask     uint32
	baseMipLevel   uint32
	levelCount     uint32
	baseArrayLayer uint32
	layerCount     uint32
}

type imageMemoryBarrier struct {
	sType               uint32
	_                   uint32
	pNext               unsafe.Pointer
	srcAccessMask       uint32
	dstAccessMask       uint32
	oldLayout           uint32
	newLayout           uint32
	srcQueueFamilyIndex uint32
	dstQueueFamilyIndex uint32
	image               uint64
	subresourceRange    imageSubresourceRange
	_                   uint32
}

type imageSubresourceLayers struct {
	aspectMask     uint32
	mipLevel       uint32
	baseArrayLayer uint32
	layerCount     uint32
}

type bufferImageCopy struct {
	bufferOffset      uint64
	bufferRowLength   uint32
	bufferImageHeight uint32
	imageSubresource  imageSubresourceLayers
	imageOffsetX      int32
	imageOffsetY      int32
	imageOffsetZ      int32
	imageExtentWidth  uint32
	imageExtentHeight uint32
	imageExtentDepth  uint32
}

type submitInfo struct {
	sType                uint32
	_                    uint32
	pNext                unsafe.Pointer
	waitSemaphoreCount   uint32
	_                    uint32
	pWaitSemaphores      unsafe.Pointer
	pWaitDstStageMask    unsafe.Pointer
	commandBufferCount   uint32
	_                    uint32
	pCommandBuffers      unsafe.Pointer
	signalSemaphoreCount uint32
	_                    uint32
	pSignalSemaphores    unsafe.Pointer
}

type fenceCreateInfo struct {
	sType uint32
	_     uint32
	pNext unsafe.Pointer
	flags uint32
	_     uint32
}
